package governance

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var bundleArguments = abi.Arguments{
	{Name: "targets", Type: mustNewType("address[]")},
	{Name: "values", Type: mustNewType("uint256[]")},
	{Name: "calldatas", Type: mustNewType("bytes[]")},
	{Name: "descriptionHash", Type: mustNewType("bytes32")},
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// HashProposal returns keccak256(abi.encode(targets, values, calldatas,
// descriptionHash)). Identical bundles always produce the same id, so any
// party can compute it before the proposal is submitted.
func HashProposal(bundle Bundle) (common.Hash, error) {
	if err := bundle.validateValues(); err != nil {
		return common.Hash{}, err
	}

	targets := bundle.Targets
	if targets == nil {
		targets = []common.Address{}
	}
	calldatas := make([][]byte, len(bundle.Calldatas))
	for i, data := range bundle.Calldatas {
		if data == nil {
			data = []byte{}
		}
		calldatas[i] = data
	}

	encoded, err := bundleArguments.Pack(targets, bundle.Values, calldatas, [32]byte(bundle.DescriptionHash))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode bundle: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

func (e *Engine) HashProposal(bundle Bundle) (common.Hash, error) {
	return HashProposal(bundle)
}

// Propose stores bundle as a new proposal of proposer and returns its id.
// Proposing a bundle that already exists returns the existing id and changes
// nothing.
func (e *Engine) Propose(ctx context.Context, proposer common.Address, bundle Bundle) (common.Hash, error) {
	unlock, err := e.lock(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	defer unlock()

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to read block height: %w", err)
	}

	var (
		id      common.Hash
		created bool
	)
	err = e.store.InTx(ctx, func(tx Tx) error {
		isMember, err := tx.IsMember(ctx, proposer)
		if err != nil {
			return err
		}
		if !isMember {
			return ErrNotMember
		}

		if err := bundle.Validate(); err != nil {
			return err
		}
		if id, err = HashProposal(bundle); err != nil {
			return err
		}

		existing, err := tx.Proposal(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		created = true
		return tx.CreateProposal(ctx, &Proposal{
			ID:             id,
			Proposer:       proposer,
			CreationHeight: height,
			Bundle:         bundle.Copy(),
		})
	})
	if err != nil {
		return common.Hash{}, err
	}

	if created {
		e.logger.Infow("proposal created", "id", id.Hex(), "proposer", proposer.Hex(), "actions", bundle.Len(), "height", height)
	} else {
		e.logger.Debugw("proposal already exists", "id", id.Hex())
	}
	return id, nil
}

// Proposal returns a snapshot of the stored proposal.
func (e *Engine) Proposal(ctx context.Context, id common.Hash) (*Proposal, error) {
	proposal, err := e.store.Proposal(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrUnknownProposal
	}
	return proposal, nil
}

// State derives the lifecycle state from the current block height and the
// stored counters. Nothing about it is persisted, so the mere passing of
// blocks resolves an active proposal.
func (e *Engine) State(ctx context.Context, id common.Hash) (ProposalState, error) {
	proposal, err := e.Proposal(ctx, id)
	if err != nil {
		return StateUnknown, err
	}

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return StateUnknown, fmt.Errorf("failed to read block height: %w", err)
	}
	return e.stateAt(proposal, height), nil
}

func (e *Engine) stateAt(proposal *Proposal, height uint64) ProposalState {
	switch {
	case proposal.Executed:
		return StateExecuted
	case height < proposal.CreationHeight || height-proposal.CreationHeight < e.params.VotingPeriod:
		return StateActive
	case proposal.ForVotes > proposal.AgainstVotes && proposal.ForVotes >= e.params.QuorumThreshold:
		return StateSucceeded
	default:
		return StateDefeated
	}
}
