package governance

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// SkippedBallot describes a ballot of a bulk submission that was not applied.
type SkippedBallot struct {
	Index  int
	Voter  common.Address
	Reason error
}

type BulkReceipt struct {
	ProposalID common.Hash
	Applied    int
	Skipped    []SkippedBallot
}

func (e *Engine) VerifyVote(signature []byte, voter common.Address, id common.Hash, support Support) (bool, error) {
	return e.verifier.VerifyVote(signature, voter, id, support)
}

// CastVoteBySig applies one signed ballot and reports precisely why it was
// refused, if it was.
func (e *Engine) CastVoteBySig(ctx context.Context, signature []byte, voter common.Address, id common.Hash, support Support) error {
	unlock, err := e.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return fmt.Errorf("failed to read block height: %w", err)
	}

	if err := e.castVote(ctx, height, signature, voter, id, support); err != nil {
		return err
	}

	e.logger.Infow("ballot applied", "proposal", id.Hex(), "voter", voter.Hex(), "support", support.String())
	return nil
}

// CastVoteBySigBulk applies a batch of signed ballots for one proposal. Only a
// shape error in the arrays fails the call; every ballot that cannot be
// applied is skipped and listed in the receipt, and the rest still count.
func (e *Engine) CastVoteBySigBulk(
	ctx context.Context,
	signatures [][]byte,
	voters []common.Address,
	id common.Hash,
	supports []Support,
) (BulkReceipt, error) {
	if len(signatures) != len(voters) || len(signatures) != len(supports) {
		return BulkReceipt{}, fmt.Errorf("%w: %d signatures, %d voters, %d supports",
			ErrLengthMismatch, len(signatures), len(voters), len(supports))
	}

	unlock, err := e.lock(ctx)
	if err != nil {
		return BulkReceipt{}, err
	}
	defer unlock()

	receipt := BulkReceipt{ProposalID: id}

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return BulkReceipt{}, fmt.Errorf("failed to read block height: %w", err)
	}

	for i := range signatures {
		err := e.castVote(ctx, height, signatures[i], voters[i], id, supports[i])
		if err != nil {
			if IsRejection(err) {
				e.logger.Debugw("ballot skipped", "proposal", id.Hex(), "index", i, "voter", voters[i].Hex(), "reason", err)
			} else {
				e.logger.Errorw("failed to apply ballot", "proposal", id.Hex(), "index", i, "voter", voters[i].Hex(), "error", err)
			}
			receipt.Skipped = append(receipt.Skipped, SkippedBallot{Index: i, Voter: voters[i], Reason: err})
			continue
		}
		receipt.Applied++
	}

	e.logger.Infow("bulk ballots processed", "proposal", id.Hex(), "applied", receipt.Applied, "skipped", len(receipt.Skipped))
	return receipt, nil
}

// castVote checks and applies one ballot in its own transaction, so a refused
// ballot leaves neither a ballot record nor a counter change behind.
func (e *Engine) castVote(ctx context.Context, height uint64, signature []byte, voter common.Address, id common.Hash, support Support) error {
	if !support.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSupport, support)
	}

	return e.store.InTx(ctx, func(tx Tx) error {
		proposal, err := tx.Proposal(ctx, id)
		if err != nil {
			return err
		}
		if proposal == nil {
			return ErrUnknownProposal
		}
		if state := e.stateAt(proposal, height); state != StateActive {
			return fmt.Errorf("%w: proposal is %s", ErrProposalNotActive, state)
		}

		isMember, err := tx.IsMember(ctx, voter)
		if err != nil {
			return err
		}
		if !isMember {
			return ErrNotMember
		}

		valid, err := e.verifier.VerifyVote(signature, voter, id, support)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}
		if !valid {
			return ErrInvalidSignature
		}

		voted, err := tx.HasVoted(ctx, id, voter)
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadyVoted
		}

		return tx.RecordBallot(ctx, Ballot{
			ProposalID: id,
			Voter:      voter,
			Support:    support,
			Height:     height,
		})
	})
}
