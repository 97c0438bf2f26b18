package governance

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type (
	Support       uint8
	ProposalState uint8
)

const (
	SupportAgainst Support = iota
	SupportFor
	SupportAbstain
)

const (
	StateUnknown ProposalState = iota
	StateActive
	StateDefeated
	StateSucceeded
	StateExecuted
)

func (s Support) Valid() bool {
	return s <= SupportAbstain
}

func (s Support) String() string {
	switch s {
	case SupportAgainst:
		return "against"
	case SupportFor:
		return "for"
	case SupportAbstain:
		return "abstain"
	default:
		return fmt.Sprintf("support(%d)", uint8(s))
	}
}

func (s ProposalState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDefeated:
		return "defeated"
	case StateSucceeded:
		return "succeeded"
	case StateExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// Resolved reports whether the voting window of a proposal in this state is over.
func (s ProposalState) Resolved() bool {
	return s == StateDefeated || s == StateSucceeded || s == StateExecuted
}

func (s ProposalState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseProposalState is the inverse of ProposalState.String.
func ParseProposalState(value string) (ProposalState, error) {
	for _, state := range []ProposalState{StateActive, StateDefeated, StateSucceeded, StateExecuted} {
		if state.String() == value {
			return state, nil
		}
	}
	return StateUnknown, fmt.Errorf("unknown proposal state %q", value)
}

type Member struct {
	Address  common.Address
	JoinedAt uint64
	FeePaid  *big.Int
}

// Call is a single external action of a bundle.
type Call struct {
	Target common.Address
	Value  *big.Int
	Data   []byte
}

// Bundle is the ordered action list of a proposal together with the digest of
// its description. Targets, Values and Calldatas are parallel arrays.
type Bundle struct {
	Targets         []common.Address
	Values          []*big.Int
	Calldatas       [][]byte
	DescriptionHash common.Hash
}

func (b Bundle) Len() int {
	return len(b.Targets)
}

// Validate checks the shape of the bundle: equal, non-zero lengths and uint256 values.
func (b Bundle) Validate() error {
	if len(b.Targets) != len(b.Values) || len(b.Targets) != len(b.Calldatas) {
		return fmt.Errorf("%w: %d targets, %d values, %d calldatas",
			ErrLengthMismatch, len(b.Targets), len(b.Values), len(b.Calldatas))
	}
	if len(b.Targets) == 0 {
		return ErrEmptyProposal
	}
	return b.validateValues()
}

func (b Bundle) validateValues() error {
	for i, value := range b.Values {
		if value == nil || value.Sign() < 0 || value.BitLen() > 256 {
			return fmt.Errorf("%w: index %d", ErrInvalidValue, i)
		}
	}
	return nil
}

// Calls zips the parallel arrays. The bundle must be valid.
func (b Bundle) Calls() []Call {
	calls := make([]Call, 0, len(b.Targets))
	for i := range b.Targets {
		calls = append(calls, Call{
			Target: b.Targets[i],
			Value:  new(big.Int).Set(b.Values[i]),
			Data:   common.CopyBytes(b.Calldatas[i]),
		})
	}
	return calls
}

func (b Bundle) Copy() Bundle {
	cp := Bundle{
		Targets:         make([]common.Address, len(b.Targets)),
		Values:          make([]*big.Int, len(b.Values)),
		Calldatas:       make([][]byte, len(b.Calldatas)),
		DescriptionHash: b.DescriptionHash,
	}
	copy(cp.Targets, b.Targets)
	for i, value := range b.Values {
		if value != nil {
			cp.Values[i] = new(big.Int).Set(value)
		}
	}
	for i, data := range b.Calldatas {
		cp.Calldatas[i] = common.CopyBytes(data)
	}
	return cp
}

type Proposal struct {
	ID             common.Hash
	Proposer       common.Address
	CreationHeight uint64
	ForVotes       uint64
	AgainstVotes   uint64
	AbstainVotes   uint64
	Executed       bool
	Bundle         Bundle
}

func (p *Proposal) Copy() *Proposal {
	cp := *p
	cp.Bundle = p.Bundle.Copy()
	return &cp
}

// Count increments the counter matching support.
func (p *Proposal) Count(support Support) {
	switch support {
	case SupportAgainst:
		p.AgainstVotes++
	case SupportFor:
		p.ForVotes++
	case SupportAbstain:
		p.AbstainVotes++
	}
}

func (p *Proposal) TotalVotes() uint64 {
	return p.ForVotes + p.AgainstVotes + p.AbstainVotes
}

type Ballot struct {
	ProposalID common.Hash
	Voter      common.Address
	Support    Support
	Height     uint64
}
