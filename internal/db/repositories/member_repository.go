package repositories

import (
	"collector_dao/internal/db/models"
	"collector_dao/internal/governance"
	"context"
	"fmt"

	"github.com/go-pg/pg/v10/orm"
)

type memberRepository struct {
	repository
}

type MemberRepository interface {
	Create(ctx context.Context, request *models.Member) error
	Exists(ctx context.Context, address string) (bool, error)
	GetOne(ctx context.Context, address string) (*models.Member, error)
}

func NewMemberRepository(db orm.DB) MemberRepository {
	return &memberRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *memberRepository) Create(ctx context.Context, request *models.Member) error {
	_, err := r.db.ModelContext(ctx, request).Insert()
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", governance.ErrAlreadyMember, request.Address)
	}
	return err
}

// GetOne returns nil, nil when address is not a member.
func (r *memberRepository) GetOne(ctx context.Context, address string) (*models.Member, error) {
	member := &models.Member{}
	err := r.db.ModelContext(ctx, member).
		Where("address = ?", address).
		Select()
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepository) Exists(ctx context.Context, address string) (bool, error) {
	return r.db.ModelContext(ctx, (*models.Member)(nil)).
		Where("address = ?", address).
		Exists()
}
