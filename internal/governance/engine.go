package governance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Params are fixed for the lifetime of an engine instance.
type Params struct {
	MembershipFee *big.Int
	// VotingPeriod is the length of the voting window in blocks.
	VotingPeriod uint64
	// QuorumThreshold is the minimum number of "for" votes a proposal needs to succeed.
	QuorumThreshold uint64
	Domain          Domain
}

func (p Params) validate() error {
	if p.MembershipFee == nil || p.MembershipFee.Sign() < 0 {
		return errors.New("membership fee must be a non-negative amount")
	}
	if p.VotingPeriod == 0 {
		return errors.New("voting period must be positive")
	}
	if p.Domain.ChainID == nil {
		return errors.New("domain chain id is required")
	}
	if p.Domain.VerifyingContract == (common.Address{}) {
		return errors.New("domain verifying contract is required")
	}
	return nil
}

// Engine is the governance state machine: membership registry, proposal store,
// ballot processor and execution engine over a Store, a Clock and a Ledger.
//
// Mutating operations are serialized; every one of them is a single store
// transaction, except CastVoteBySigBulk which uses one transaction per ballot.
// While Execute dispatches calls, mutating operations fail with
// ErrReentrantCall.
type Engine struct {
	params   Params
	store    Store
	clock    Clock
	ledger   Ledger
	verifier *Verifier
	logger   *zap.SugaredLogger

	mu          sync.Mutex
	dispatching atomic.Bool
}

type Option func(e *Engine)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(params Params, store Store, clock Clock, ledger Ledger, opts ...Option) (*Engine, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("invalid engine params: %w", err)
	}

	e := &Engine{
		params: Params{
			MembershipFee:   new(big.Int).Set(params.MembershipFee),
			VotingPeriod:    params.VotingPeriod,
			QuorumThreshold: params.QuorumThreshold,
			Domain:          params.Domain,
		},
		store:    store,
		clock:    clock,
		ledger:   ledger,
		verifier: NewVerifier(params.Domain),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Address is the account holding the engine's custody on the ledger.
func (e *Engine) Address() common.Address {
	return e.params.Domain.VerifyingContract
}

func (e *Engine) Params() Params {
	return e.params
}

func (e *Engine) Verifier() *Verifier {
	return e.verifier
}

// Treasury returns the recorded sum of membership fees.
func (e *Engine) Treasury(ctx context.Context) (*big.Int, error) {
	return e.store.Treasury(ctx)
}

type dispatchKey struct{}

// lock serializes mutating operations. Calls dispatched by Execute carry a
// marker in their context, and the engine flags the dispatch itself for
// handlers that start from a fresh context. Either way the call is refused
// instead of waiting on the lock the dispatcher holds.
func (e *Engine) lock(ctx context.Context) (func(), error) {
	if ctx.Value(dispatchKey{}) != nil || e.dispatching.Load() {
		return nil, ErrReentrantCall
	}
	e.mu.Lock()
	return e.mu.Unlock, nil
}
