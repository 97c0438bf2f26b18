package governance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Join makes account a member against payment of exactly the membership fee.
// The fee moves from account to the engine's custody on the ledger; a failed
// transfer leaves account a non-member and is reported as ErrPaymentFailed.
func (e *Engine) Join(ctx context.Context, account common.Address, paid *big.Int) error {
	unlock, err := e.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return fmt.Errorf("failed to read block height: %w", err)
	}

	// The store commit happens inside the ledger block, so a failed commit
	// also returns the fee.
	err = e.ledger.Atomic(ctx, func(ctx context.Context) error {
		return e.store.InTx(ctx, func(tx Tx) error {
			isMember, err := tx.IsMember(ctx, account)
			if err != nil {
				return err
			}
			if isMember {
				return ErrAlreadyMember
			}
			if paid == nil || paid.Cmp(e.params.MembershipFee) != 0 {
				return fmt.Errorf("%w: want %s", ErrWrongFee, e.params.MembershipFee)
			}

			member := Member{Address: account, JoinedAt: height, FeePaid: new(big.Int).Set(paid)}
			if err := tx.AddMember(ctx, member); err != nil {
				return err
			}
			if err := tx.CreditTreasury(ctx, paid); err != nil {
				return err
			}
			if err := e.ledger.Transfer(ctx, account, e.Address(), paid); err != nil {
				return fmt.Errorf("%w: %w", ErrPaymentFailed, err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	e.logger.Infow("member joined", "account", account.Hex(), "height", height)
	return nil
}

func (e *Engine) IsMember(ctx context.Context, account common.Address) (bool, error) {
	return e.store.IsMember(ctx, account)
}
