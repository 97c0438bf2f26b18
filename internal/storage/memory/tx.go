package memory

import (
	"context"
	"fmt"
	"math/big"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
)

type transaction struct {
	state *state
}

func (t *transaction) IsMember(ctx context.Context, account common.Address) (bool, error) {
	return t.state.isMember(account), nil
}

func (t *transaction) Proposal(ctx context.Context, id common.Hash) (*governance.Proposal, error) {
	return t.state.proposal(id), nil
}

func (t *transaction) HasVoted(ctx context.Context, id common.Hash, voter common.Address) (bool, error) {
	return t.state.hasVoted(id, voter), nil
}

func (t *transaction) Treasury(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(t.state.treasury), nil
}

func (t *transaction) AddMember(ctx context.Context, member governance.Member) error {
	if t.state.isMember(member.Address) {
		return governance.ErrAlreadyMember
	}
	if member.FeePaid != nil {
		member.FeePaid = new(big.Int).Set(member.FeePaid)
	}
	t.state.members[member.Address] = member
	return nil
}

func (t *transaction) CreditTreasury(ctx context.Context, amount *big.Int) error {
	t.state.treasury.Add(t.state.treasury, amount)
	return nil
}

func (t *transaction) CreateProposal(ctx context.Context, proposal *governance.Proposal) error {
	if _, ok := t.state.proposals[proposal.ID]; ok {
		return fmt.Errorf("proposal %s already stored", proposal.ID.Hex())
	}
	t.state.proposals[proposal.ID] = proposal.Copy()
	return nil
}

func (t *transaction) RecordBallot(ctx context.Context, ballot governance.Ballot) error {
	proposal, ok := t.state.proposals[ballot.ProposalID]
	if !ok {
		return governance.ErrUnknownProposal
	}

	key := ballotKey{proposal: ballot.ProposalID, voter: ballot.Voter}
	if _, ok := t.state.ballots[key]; ok {
		return governance.ErrAlreadyVoted
	}

	t.state.ballots[key] = ballot
	proposal.Count(ballot.Support)
	return nil
}

func (t *transaction) MarkExecuted(ctx context.Context, id common.Hash) error {
	proposal, ok := t.state.proposals[id]
	if !ok {
		return governance.ErrUnknownProposal
	}
	proposal.Executed = true
	return nil
}
