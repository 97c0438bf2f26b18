package db

import (
	"collector_dao/internal/db/models"
	"collector_dao/internal/db/repositories"
	"collector_dao/internal/governance"
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// Store is the PostgreSQL governance.Store. Uniqueness of members, proposals
// and ballots is also enforced by primary keys, so concurrent processes
// sharing the database cannot double-join or double-vote.
type Store struct {
	db *pg.DB
	*queries
}

func NewStore(db *pg.DB) *Store {
	return &Store{db: db, queries: newQueries(db)}
}

func (s *Store) InTx(ctx context.Context, fn func(tx governance.Tx) error) error {
	return s.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(newQueries(tx))
	})
}

// queries implements governance.Tx over a connection or a transaction.
type queries struct {
	members   repositories.MemberRepository
	proposals repositories.ProposalRepository
	ballots   repositories.BallotRepository
	treasury  repositories.TreasuryRepository
}

func newQueries(db orm.DB) *queries {
	return &queries{
		members:   repositories.NewMemberRepository(db),
		proposals: repositories.NewProposalRepository(db),
		ballots:   repositories.NewBallotRepository(db),
		treasury:  repositories.NewTreasuryRepository(db),
	}
}

func (q *queries) IsMember(ctx context.Context, account common.Address) (bool, error) {
	return q.members.Exists(ctx, account.Hex())
}

func (q *queries) Proposal(ctx context.Context, id common.Hash) (*governance.Proposal, error) {
	proposal, err := q.proposals.GetOne(ctx, id.Hex())
	if err != nil || proposal == nil {
		return nil, err
	}
	return proposal.ToGovernance()
}

func (q *queries) HasVoted(ctx context.Context, id common.Hash, voter common.Address) (bool, error) {
	return q.ballots.Exists(ctx, id.Hex(), voter.Hex())
}

func (q *queries) Treasury(ctx context.Context) (*big.Int, error) {
	return q.treasury.Get(ctx)
}

func (q *queries) AddMember(ctx context.Context, member governance.Member) error {
	return q.members.Create(ctx, models.NewMember(member))
}

func (q *queries) CreditTreasury(ctx context.Context, amount *big.Int) error {
	return q.treasury.Credit(ctx, amount)
}

func (q *queries) CreateProposal(ctx context.Context, proposal *governance.Proposal) error {
	return q.proposals.Create(ctx, models.NewProposal(proposal))
}

func (q *queries) RecordBallot(ctx context.Context, ballot governance.Ballot) error {
	if err := q.ballots.Create(ctx, models.NewBallot(ballot)); err != nil {
		return err
	}
	return q.proposals.IncrementTally(ctx, ballot.ProposalID.Hex(), ballot.Support)
}

func (q *queries) MarkExecuted(ctx context.Context, id common.Hash) error {
	return q.proposals.MarkExecuted(ctx, id.Hex())
}
