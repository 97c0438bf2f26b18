package governance

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type Reader interface {
	IsMember(ctx context.Context, account common.Address) (bool, error)
	// Proposal returns nil and no error when the id is unknown.
	Proposal(ctx context.Context, id common.Hash) (*Proposal, error)
	HasVoted(ctx context.Context, id common.Hash, voter common.Address) (bool, error)
	Treasury(ctx context.Context) (*big.Int, error)
}

type Tx interface {
	Reader

	AddMember(ctx context.Context, member Member) error
	CreditTreasury(ctx context.Context, amount *big.Int) error
	CreateProposal(ctx context.Context, proposal *Proposal) error
	// RecordBallot stores the ballot record and increments the matching tally
	// counter of its proposal. The two writes are never applied separately.
	RecordBallot(ctx context.Context, ballot Ballot) error
	MarkExecuted(ctx context.Context, id common.Hash) error
}

// Store persists members, proposals, ballot records and the treasury record.
// InTx commits the writes of fn only when fn returns nil.
type Store interface {
	Reader
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Clock is the host's monotonically increasing logical clock.
type Clock interface {
	BlockHeight(ctx context.Context) (uint64, error)
}

// Ledger is the host's value transfer and call dispatch surface. Atomic runs fn
// so that every Transfer and Call made through the context it receives is
// undone when fn returns an error.
type Ledger interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
	Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error
	Call(ctx context.Context, from common.Address, call Call) error
}
