package governance

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Execute runs the action bundle of a succeeded proposal exactly once. The id
// is re-derived from the supplied bundle, so only the bundle that was voted on
// can be executed.
//
// The proposal is marked executed before any call is dispatched. If a call
// fails, the ledger effects of the bundle and the executed flag are rolled
// back together and the proposal stays succeeded.
func (e *Engine) Execute(ctx context.Context, bundle Bundle) (common.Hash, error) {
	unlock, err := e.lock(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	defer unlock()

	if err := bundle.Validate(); err != nil {
		return common.Hash{}, err
	}
	id, err := HashProposal(bundle)
	if err != nil {
		return common.Hash{}, err
	}

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to read block height: %w", err)
	}

	dispatchCtx := context.WithValue(ctx, dispatchKey{}, id)
	err = e.ledger.Atomic(dispatchCtx, func(ctx context.Context) error {
		return e.store.InTx(ctx, func(tx Tx) error {
			proposal, err := tx.Proposal(ctx, id)
			if err != nil {
				return err
			}
			if proposal == nil {
				return ErrUnknownProposal
			}
			if proposal.Executed {
				return ErrAlreadyExecuted
			}
			if state := e.stateAt(proposal, height); state != StateSucceeded {
				return fmt.Errorf("%w: proposal is %s", ErrNotSucceeded, state)
			}

			if err := tx.MarkExecuted(ctx, id); err != nil {
				return err
			}

			e.dispatching.Store(true)
			defer e.dispatching.Store(false)
			for i, call := range bundle.Calls() {
				if err := e.ledger.Call(ctx, e.Address(), call); err != nil {
					return fmt.Errorf("%w: call %d to %s: %w", ErrCallReverted, i, call.Target.Hex(), err)
				}
			}
			return nil
		})
	})
	if err != nil {
		e.logger.Warnw("proposal execution failed", "id", id.Hex(), "error", err)
		return common.Hash{}, err
	}

	e.logger.Infow("proposal executed", "id", id.Hex(), "calls", bundle.Len(), "height", height)
	return id, nil
}
