// Package ledger provides hosts for the governance engine: a block height
// source and a value ledger that dispatches proposal calls.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeAmount      = errors.New("negative amount")
)

// Handler receives the calls dispatched to the address it is registered for.
// The value has already been credited to that address when it runs. Handlers
// that call back into the ledger or the engine must pass ctx along so their
// effects join the dispatching block.
type Handler func(ctx context.Context, from common.Address, value *big.Int, data []byte) error

type CallReceipt struct {
	From   common.Address
	Target common.Address
	Value  *big.Int
	Data   []byte
	Height uint64
}

type atomicKey struct{}

// Chain is an in-process ledger and clock. Balances and call receipts are
// journaled inside Atomic; the height is not.
type Chain struct {
	writer sync.Mutex

	mu             sync.Mutex
	height         uint64
	balances       map[common.Address]*big.Int
	defaultBalance *big.Int
	handlers       map[common.Address]Handler
	receipts       []CallReceipt

	logger *zap.SugaredLogger
}

type ChainOption func(c *Chain)

// WithDefaultBalance gives every account the chain has not seen yet an
// initial balance of amount.
func WithDefaultBalance(amount *big.Int) ChainOption {
	return func(c *Chain) {
		c.defaultBalance = new(big.Int).Set(amount)
	}
}

func WithHeight(height uint64) ChainOption {
	return func(c *Chain) {
		c.height = height
	}
}

func WithChainLogger(logger *zap.SugaredLogger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{
		balances:       make(map[common.Address]*big.Int),
		defaultBalance: new(big.Int),
		handlers:       make(map[common.Address]Handler),
		logger:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chain) BlockHeight(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height, nil
}

// Advance mines n empty blocks.
func (c *Chain) Advance(n uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height += n
	return c.height
}

func (c *Chain) SetHeight(height uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = height
}

// Fund credits amount to account out of thin air.
func (c *Chain) Fund(account common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setBalance(account, new(big.Int).Add(c.balanceOf(account), amount))
}

func (c *Chain) Balance(account common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.balanceOf(account))
}

// Register routes calls to target through handler. A target without a
// handler accepts any call and only receives its value.
func (c *Chain) Register(target common.Address, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[target] = handler
}

// Calls returns the receipts of the calls dispatched so far.
func (c *Chain) Calls() []CallReceipt {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipts := make([]CallReceipt, len(c.receipts))
	copy(receipts, c.receipts)
	return receipts
}

// Atomic runs fn and restores balances and receipts if it fails. Atomic
// blocks nest; the outermost one holds the writer lock.
func (c *Chain) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(atomicKey{}) == nil {
		c.writer.Lock()
		defer c.writer.Unlock()
		ctx = context.WithValue(ctx, atomicKey{}, true)
	}

	snap := c.snapshot()
	if err := fn(ctx); err != nil {
		c.restore(snap)
		return err
	}
	return nil
}

func (c *Chain) Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if ctx.Value(atomicKey{}) == nil {
		return c.Atomic(ctx, func(ctx context.Context) error {
			return c.Transfer(ctx, from, to, amount)
		})
	}

	if amount.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	balance := c.balanceOf(from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from.Hex(), balance, amount)
	}
	c.setBalance(from, new(big.Int).Sub(balance, amount))
	c.setBalance(to, new(big.Int).Add(c.balanceOf(to), amount))
	return nil
}

// Call moves call.Value from from to the target and hands the call to the
// target's handler.
func (c *Chain) Call(ctx context.Context, from common.Address, call governance.Call) error {
	if ctx.Value(atomicKey{}) == nil {
		return c.Atomic(ctx, func(ctx context.Context) error {
			return c.Call(ctx, from, call)
		})
	}

	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	if err := c.Transfer(ctx, from, call.Target, value); err != nil {
		return err
	}

	c.mu.Lock()
	handler := c.handlers[call.Target]
	c.receipts = append(c.receipts, CallReceipt{
		From:   from,
		Target: call.Target,
		Value:  new(big.Int).Set(value),
		Data:   common.CopyBytes(call.Data),
		Height: c.height,
	})
	c.mu.Unlock()

	if handler != nil {
		if err := handler(ctx, from, new(big.Int).Set(value), common.CopyBytes(call.Data)); err != nil {
			c.logger.Debugw("call handler failed", "target", call.Target.Hex(), "error", err)
			return err
		}
	}
	return nil
}

type snapshot struct {
	balances map[common.Address]*big.Int
	receipts int
}

func (c *Chain) snapshot() snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	balances := make(map[common.Address]*big.Int, len(c.balances))
	for account, balance := range c.balances {
		balances[account] = balance
	}
	return snapshot{balances: balances, receipts: len(c.receipts)}
}

func (c *Chain) restore(s snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.balances = s.balances
	c.receipts = c.receipts[:s.receipts]
}

// balanceOf must be called with mu held. Balances are replaced, never
// modified in place, so snapshots can share them.
func (c *Chain) balanceOf(account common.Address) *big.Int {
	if balance, ok := c.balances[account]; ok {
		return balance
	}
	return c.defaultBalance
}

func (c *Chain) setBalance(account common.Address, balance *big.Int) {
	c.balances[account] = balance
}
