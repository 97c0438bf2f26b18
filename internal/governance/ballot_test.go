package governance_test

import (
	"context"
	"testing"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteBySig_CountsOnce(t *testing.T) {
	f := newFixture(t, 10, 1)
	member := f.newMember(t)
	id := f.propose(t, member, transferBundle(recipient, 1, "vote"))

	require.NoError(t, f.vote(t, member, id, governance.SupportFor))

	err := f.vote(t, member, id, governance.SupportFor)
	assert.ErrorIs(t, err, governance.ErrAlreadyVoted)
	err = f.vote(t, member, id, governance.SupportAgainst)
	assert.ErrorIs(t, err, governance.ErrAlreadyVoted)

	proposal, err := f.engine.Proposal(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), proposal.ForVotes)
	assert.Equal(t, uint64(0), proposal.AgainstVotes)
	assert.Equal(t, uint64(1), proposal.TotalVotes())
}

func TestCastVoteBySig_EachSupport(t *testing.T) {
	f := newFixture(t, 10, 1)
	proposer := f.newMember(t)
	id := f.propose(t, proposer, transferBundle(recipient, 1, "vote"))

	for _, support := range []governance.Support{governance.SupportAgainst, governance.SupportFor, governance.SupportAbstain} {
		require.NoError(t, f.vote(t, f.newMember(t), id, support))
	}

	proposal, err := f.engine.Proposal(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), proposal.ForVotes)
	assert.Equal(t, uint64(1), proposal.AgainstVotes)
	assert.Equal(t, uint64(1), proposal.AbstainVotes)
}

func TestCastVoteBySig_Rejections(t *testing.T) {
	f := newFixture(t, 10, 1)
	ctx := context.Background()
	member := f.newMember(t)
	other := f.newMember(t)
	outsider := newAccount(t)
	id := f.propose(t, member, transferBundle(recipient, 1, "vote"))

	t.Run("unknown proposal", func(t *testing.T) {
		unknown := common.Hash{0x99}
		err := f.engine.CastVoteBySig(ctx, f.sign(t, member, unknown, governance.SupportFor), member.address, unknown, governance.SupportFor)
		assert.ErrorIs(t, err, governance.ErrUnknownProposal)
	})

	t.Run("not a member", func(t *testing.T) {
		err := f.vote(t, outsider, id, governance.SupportFor)
		assert.ErrorIs(t, err, governance.ErrNotMember)
	})

	t.Run("signed by someone else", func(t *testing.T) {
		signature := f.sign(t, other, id, governance.SupportFor)
		err := f.engine.CastVoteBySig(ctx, signature, member.address, id, governance.SupportFor)
		assert.ErrorIs(t, err, governance.ErrInvalidSignature)
	})

	t.Run("signed for other support", func(t *testing.T) {
		signature := f.sign(t, member, id, governance.SupportAgainst)
		err := f.engine.CastVoteBySig(ctx, signature, member.address, id, governance.SupportFor)
		assert.ErrorIs(t, err, governance.ErrInvalidSignature)
	})

	t.Run("malformed signature", func(t *testing.T) {
		err := f.engine.CastVoteBySig(ctx, []byte{0xde, 0xad}, member.address, id, governance.SupportFor)
		assert.ErrorIs(t, err, governance.ErrInvalidSignature)
		assert.ErrorIs(t, err, governance.ErrMalformedSignature)
		assert.Equal(t, "invalid_signature", governance.ErrorCode(err))
	})

	t.Run("invalid support", func(t *testing.T) {
		err := f.engine.CastVoteBySig(ctx, f.sign(t, member, id, 3), member.address, id, 3)
		assert.ErrorIs(t, err, governance.ErrInvalidSupport)
	})

	proposal, err := f.engine.Proposal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), proposal.TotalVotes())

	voted, err := f.store.HasVoted(ctx, id, member.address)
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestCastVoteBySig_AfterVotingWindow(t *testing.T) {
	f := newFixture(t, 10, 1)
	member := f.newMember(t)
	id := f.propose(t, member, transferBundle(recipient, 1, "late"))

	f.chain.Advance(10)

	err := f.vote(t, member, id, governance.SupportFor)
	assert.ErrorIs(t, err, governance.ErrProposalNotActive)
}

func TestCastVoteBySig_MemberJoinedAfterProposal(t *testing.T) {
	f := newFixture(t, 10, 1)
	proposer := f.newMember(t)
	id := f.propose(t, proposer, transferBundle(recipient, 1, "late joiner"))

	f.chain.Advance(2)
	latecomer := f.newMember(t)

	assert.NoError(t, f.vote(t, latecomer, id, governance.SupportFor))
}

func TestCastVoteBySigBulk_LengthMismatch(t *testing.T) {
	f := newFixture(t, 10, 1)
	member := f.newMember(t)
	id := f.propose(t, member, transferBundle(recipient, 1, "bulk"))

	_, err := f.engine.CastVoteBySigBulk(context.Background(),
		[][]byte{f.sign(t, member, id, governance.SupportFor)},
		[]common.Address{member.address, member.address},
		id,
		[]governance.Support{governance.SupportFor},
	)
	assert.ErrorIs(t, err, governance.ErrLengthMismatch)

	proposal, err := f.engine.Proposal(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), proposal.TotalVotes())
}

type signedBallot struct {
	signature []byte
	voter     common.Address
	support   governance.Support
}

func castBulk(t *testing.T, f *fixture, id common.Hash, ballots []signedBallot) governance.BulkReceipt {
	t.Helper()

	signatures := make([][]byte, 0, len(ballots))
	voters := make([]common.Address, 0, len(ballots))
	supports := make([]governance.Support, 0, len(ballots))
	for _, b := range ballots {
		signatures = append(signatures, b.signature)
		voters = append(voters, b.voter)
		supports = append(supports, b.support)
	}

	receipt, err := f.engine.CastVoteBySigBulk(context.Background(), signatures, voters, id, supports)
	require.NoError(t, err)
	return receipt
}

func TestCastVoteBySigBulk_SkipsInvalidItems(t *testing.T) {
	f := newFixture(t, 10, 1)
	members := []account{f.newMember(t), f.newMember(t), f.newMember(t)}
	outsider := newAccount(t)
	id := f.propose(t, members[0], transferBundle(recipient, 1, "bulk"))

	ballots := []signedBallot{
		{f.sign(t, members[0], id, governance.SupportFor), members[0].address, governance.SupportFor},
		{f.sign(t, outsider, id, governance.SupportFor), outsider.address, governance.SupportFor},
		{f.sign(t, members[1], id, governance.SupportAgainst), members[1].address, governance.SupportAgainst},
		{f.sign(t, members[0], id, governance.SupportFor), members[0].address, governance.SupportFor},
		{f.sign(t, members[1], id, governance.SupportFor), members[2].address, governance.SupportFor},
		{[]byte{0x01}, members[2].address, governance.SupportFor},
	}

	receipt := castBulk(t, f, id, ballots)

	assert.Equal(t, id, receipt.ProposalID)
	assert.Equal(t, 2, receipt.Applied)
	require.Len(t, receipt.Skipped, 4)

	reasons := map[int]error{}
	for _, skipped := range receipt.Skipped {
		reasons[skipped.Index] = skipped.Reason
		assert.Equal(t, ballots[skipped.Index].voter, skipped.Voter)
	}
	assert.ErrorIs(t, reasons[1], governance.ErrNotMember)
	assert.ErrorIs(t, reasons[3], governance.ErrAlreadyVoted)
	assert.ErrorIs(t, reasons[4], governance.ErrInvalidSignature)
	assert.ErrorIs(t, reasons[5], governance.ErrMalformedSignature)

	proposal, err := f.engine.Proposal(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), proposal.ForVotes)
	assert.Equal(t, uint64(1), proposal.AgainstVotes)
}

func TestCastVoteBySigBulk_OrderDoesNotMatter(t *testing.T) {
	build := func(t *testing.T, reverse bool) *governance.Proposal {
		f := newFixture(t, 10, 1)
		proposer := f.newMember(t)
		voters := []account{f.newMember(t), f.newMember(t), f.newMember(t)}
		forger := f.newMember(t)
		id := f.propose(t, proposer, transferBundle(recipient, 1, "order"))

		ballots := []signedBallot{
			{f.sign(t, forger, id, governance.SupportFor), voters[0].address, governance.SupportAgainst},
			{f.sign(t, newAccount(t), id, governance.SupportFor), common.Address{0x01}, governance.SupportFor},
		}
		for _, v := range voters {
			ballots = append(ballots, signedBallot{f.sign(t, v, id, governance.SupportFor), v.address, governance.SupportFor})
		}
		if reverse {
			for i, j := 0, len(ballots)-1; i < j; i, j = i+1, j-1 {
				ballots[i], ballots[j] = ballots[j], ballots[i]
			}
		}

		receipt := castBulk(t, f, id, ballots)
		assert.Equal(t, 3, receipt.Applied)
		assert.Len(t, receipt.Skipped, 2)

		proposal, err := f.engine.Proposal(context.Background(), id)
		require.NoError(t, err)
		return proposal
	}

	forward := build(t, false)
	backward := build(t, true)

	assert.Equal(t, uint64(3), forward.ForVotes)
	assert.Equal(t, forward.ForVotes, backward.ForVotes)
	assert.Equal(t, forward.AgainstVotes, backward.AgainstVotes)
	assert.Equal(t, forward.AbstainVotes, backward.AbstainVotes)
}

func TestCastVoteBySigBulk_InactiveProposalSkipsAll(t *testing.T) {
	f := newFixture(t, 10, 1)
	member := f.newMember(t)
	id := f.propose(t, member, transferBundle(recipient, 1, "closed"))
	f.chain.Advance(10)

	receipt := castBulk(t, f, id, []signedBallot{
		{f.sign(t, member, id, governance.SupportFor), member.address, governance.SupportFor},
	})
	assert.Equal(t, 0, receipt.Applied)
	require.Len(t, receipt.Skipped, 1)
	assert.ErrorIs(t, receipt.Skipped[0].Reason, governance.ErrProposalNotActive)
}
