// Package memory is an in-process governance.Store. A transaction works on a
// private copy of the state which replaces the shared state on commit.
package memory

import (
	"context"
	"math/big"
	"sync"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
)

type ballotKey struct {
	proposal common.Hash
	voter    common.Address
}

type state struct {
	members   map[common.Address]governance.Member
	proposals map[common.Hash]*governance.Proposal
	ballots   map[ballotKey]governance.Ballot
	treasury  *big.Int
}

func newState() *state {
	return &state{
		members:   make(map[common.Address]governance.Member),
		proposals: make(map[common.Hash]*governance.Proposal),
		ballots:   make(map[ballotKey]governance.Ballot),
		treasury:  new(big.Int),
	}
}

func (s *state) clone() *state {
	cp := &state{
		members:   make(map[common.Address]governance.Member, len(s.members)),
		proposals: make(map[common.Hash]*governance.Proposal, len(s.proposals)),
		ballots:   make(map[ballotKey]governance.Ballot, len(s.ballots)),
		treasury:  new(big.Int).Set(s.treasury),
	}
	for address, member := range s.members {
		cp.members[address] = member
	}
	for id, proposal := range s.proposals {
		cp.proposals[id] = proposal.Copy()
	}
	for key, ballot := range s.ballots {
		cp.ballots[key] = ballot
	}
	return cp
}

// Store keeps the committed state behind a pointer. A committed state is never
// modified, so readers only hold the lock while loading the pointer.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) IsMember(ctx context.Context, account common.Address) (bool, error) {
	return s.current().isMember(account), nil
}

func (s *Store) Proposal(ctx context.Context, id common.Hash) (*governance.Proposal, error) {
	return s.current().proposal(id), nil
}

func (s *Store) HasVoted(ctx context.Context, id common.Hash, voter common.Address) (bool, error) {
	return s.current().hasVoted(id, voter), nil
}

func (s *Store) Treasury(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(s.current().treasury), nil
}

// InTx runs fn against a copy of the state. The copy replaces the state only
// if fn returns nil. Transactions are serialized.
func (s *Store) InTx(ctx context.Context, fn func(tx governance.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &transaction{state: s.current().clone()}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = tx.state
	s.mu.Unlock()
	return nil
}

func (s *state) isMember(account common.Address) bool {
	_, ok := s.members[account]
	return ok
}

func (s *state) proposal(id common.Hash) *governance.Proposal {
	proposal, ok := s.proposals[id]
	if !ok {
		return nil
	}
	return proposal.Copy()
}

func (s *state) hasVoted(id common.Hash, voter common.Address) bool {
	_, ok := s.ballots[ballotKey{proposal: id, voter: voter}]
	return ok
}
