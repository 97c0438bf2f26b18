package repositories

import (
	"collector_dao/internal/db/models"
	"collector_dao/internal/governance"
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type proposalRepository struct {
	repository
}

type ProposalRepository interface {
	Create(ctx context.Context, request *models.Proposal) error
	// GetOne returns nil and no error when there is no such proposal.
	GetOne(ctx context.Context, proposalID string) (*models.Proposal, error)
	GetManyNotExecuted(ctx context.Context) ([]*models.Proposal, error)
	// GetManyUnannounced returns the proposals whose latest resolution has not
	// been announced yet: never announced, or announced as succeeded.
	GetManyUnannounced(ctx context.Context) ([]*models.Proposal, error)
	IncrementTally(ctx context.Context, proposalID string, support governance.Support) error
	MarkExecuted(ctx context.Context, proposalID string) error
	MarkAnnounced(ctx context.Context, proposalID string, state governance.ProposalState) error
}

func NewProposalRepository(db orm.DB) ProposalRepository {
	return &proposalRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *proposalRepository) Create(ctx context.Context, request *models.Proposal) error {
	if _, err := r.db.ModelContext(ctx, request).Insert(); err != nil {
		return err
	}
	if len(request.Actions) == 0 {
		return nil
	}

	_, err := r.db.ModelContext(ctx, &request.Actions).Insert()
	return err
}

func (r *proposalRepository) GetOne(ctx context.Context, proposalID string) (*models.Proposal, error) {
	proposal := &models.Proposal{}

	err := r.db.ModelContext(ctx, proposal).
		Relation("Actions").
		Where("proposal.id = ?", proposalID).
		Select()
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return proposal, nil
}

func (r *proposalRepository) GetManyNotExecuted(ctx context.Context) ([]*models.Proposal, error) {
	proposals := make([]*models.Proposal, 0)

	err := r.db.ModelContext(ctx, &proposals).
		Relation("Actions").
		Where("proposal.executed = FALSE").
		OrderExpr("proposal.creation_height ASC").
		Select()

	return proposals, err
}

func (r *proposalRepository) GetManyUnannounced(ctx context.Context) ([]*models.Proposal, error) {
	proposals := make([]*models.Proposal, 0)

	err := r.db.ModelContext(ctx, &proposals).
		Relation("Actions").
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			q = q.WhereOr("proposal.announced_state IS NULL").
				WhereOr("proposal.announced_state = ?", governance.StateSucceeded.String())
			return q, nil
		}).
		OrderExpr("proposal.creation_height ASC").
		Select()

	return proposals, err
}

func (r *proposalRepository) IncrementTally(ctx context.Context, proposalID string, support governance.Support) error {
	var column string
	switch support {
	case governance.SupportFor:
		column = "for_votes"
	case governance.SupportAgainst:
		column = "against_votes"
	case governance.SupportAbstain:
		column = "abstain_votes"
	default:
		return fmt.Errorf("%w: %d", governance.ErrInvalidSupport, support)
	}

	res, err := r.db.ModelContext(ctx, (*models.Proposal)(nil)).
		Set("? = ? + 1", pg.Ident(column), pg.Ident(column)).
		Where("id = ?", proposalID).
		Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return governance.ErrUnknownProposal
	}
	return nil
}

func (r *proposalRepository) MarkExecuted(ctx context.Context, proposalID string) error {
	res, err := r.db.ModelContext(ctx, (*models.Proposal)(nil)).
		Set("executed = TRUE").
		Where("id = ?", proposalID).
		Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return governance.ErrUnknownProposal
	}
	return nil
}

func (r *proposalRepository) MarkAnnounced(ctx context.Context, proposalID string, state governance.ProposalState) error {
	_, err := r.db.ModelContext(ctx, (*models.Proposal)(nil)).
		Set("announced_state = ?", state.String()).
		Where("id = ?", proposalID).
		Update()

	return err
}
