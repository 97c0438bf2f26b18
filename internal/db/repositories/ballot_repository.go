package repositories

import (
	"collector_dao/internal/db/models"
	"collector_dao/internal/governance"
	"context"
	"fmt"

	"github.com/go-pg/pg/v10/orm"
)

type ballotRepository struct {
	repository
}

type BallotRepository interface {
	Create(ctx context.Context, request *models.Ballot) error
	Exists(ctx context.Context, proposalID, voter string) (bool, error)
}

func NewBallotRepository(db orm.DB) BallotRepository {
	return &ballotRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *ballotRepository) Create(ctx context.Context, request *models.Ballot) error {
	_, err := r.db.ModelContext(ctx, request).Insert()
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s on %s", governance.ErrAlreadyVoted, request.Voter, request.ProposalID)
	}
	return err
}

func (r *ballotRepository) Exists(ctx context.Context, proposalID, voter string) (bool, error) {
	return r.db.ModelContext(ctx, (*models.Ballot)(nil)).
		Where("proposal_id = ?", proposalID).
		Where("voter = ?", voter).
		Exists()
}
