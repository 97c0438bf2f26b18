package repositories

import (
	"collector_dao/internal/db/models"
	"context"
	"fmt"
	"math/big"

	"github.com/go-pg/pg/v10/orm"
)

type treasuryRepository struct {
	repository
}

type TreasuryRepository interface {
	Get(ctx context.Context) (*big.Int, error)
	Credit(ctx context.Context, amount *big.Int) error
}

func NewTreasuryRepository(db orm.DB) TreasuryRepository {
	return &treasuryRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *treasuryRepository) Get(ctx context.Context) (*big.Int, error) {
	treasury := &models.Treasury{ID: models.TreasuryID}

	if err := r.db.ModelContext(ctx, treasury).WherePK().Select(); err != nil {
		return nil, err
	}

	total, ok := new(big.Int).SetString(treasury.Total, 10)
	if !ok {
		return nil, fmt.Errorf("invalid treasury total %q", treasury.Total)
	}
	return total, nil
}

func (r *treasuryRepository) Credit(ctx context.Context, amount *big.Int) error {
	_, err := r.db.ModelContext(ctx, (*models.Treasury)(nil)).
		Set("total = total + ?::numeric", amount.String()).
		Where("id = ?", models.TreasuryID).
		Update()

	return err
}
