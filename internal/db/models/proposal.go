package models

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
)

type Proposal struct {
	ID              string           `json:"id" pg:",pk"`
	Proposer        string           `json:"proposer" pg:",notnull"`
	CreationHeight  uint64           `json:"creation_height" pg:",use_zero,notnull"`
	DescriptionHash string           `json:"description_hash" pg:",notnull"`
	ForVotes        uint64           `json:"for_votes" pg:",use_zero,notnull"`
	AgainstVotes    uint64           `json:"against_votes" pg:",use_zero,notnull"`
	AbstainVotes    uint64           `json:"abstain_votes" pg:",use_zero,notnull"`
	Executed        bool             `json:"executed" pg:",use_zero,notnull"`
	AnnouncedState  string           `json:"announced_state"`
	CreatedAt       time.Time        `json:"created_at" pg:"default:now()"`
	Actions         []ProposalAction `json:"actions" pg:"rel:has-many"`
}

// ProposalAction is one (target, value, calldata) entry of a proposal bundle.
type ProposalAction struct {
	ID         int64  `json:"id" pg:",pk"`
	ProposalID string `json:"proposal_id" pg:",notnull"`
	Position   int    `json:"position" pg:",use_zero,notnull"`
	Target     string `json:"target" pg:",notnull"`
	Value      string `json:"value" pg:"type:numeric,notnull"`
	Calldata   []byte `json:"calldata" pg:",use_zero,notnull"`
}

func NewProposal(proposal *governance.Proposal) *Proposal {
	id := proposal.ID.Hex()
	actions := make([]ProposalAction, 0, proposal.Bundle.Len())
	for i, call := range proposal.Bundle.Calls() {
		data := call.Data
		if data == nil {
			data = []byte{}
		}
		actions = append(actions, ProposalAction{
			ProposalID: id,
			Position:   i,
			Target:     call.Target.Hex(),
			Value:      call.Value.String(),
			Calldata:   data,
		})
	}

	return &Proposal{
		ID:              id,
		Proposer:        proposal.Proposer.Hex(),
		CreationHeight:  proposal.CreationHeight,
		DescriptionHash: proposal.Bundle.DescriptionHash.Hex(),
		ForVotes:        proposal.ForVotes,
		AgainstVotes:    proposal.AgainstVotes,
		AbstainVotes:    proposal.AbstainVotes,
		Executed:        proposal.Executed,
		Actions:         actions,
	}
}

func (p *Proposal) ToGovernance() (*governance.Proposal, error) {
	actions := make([]ProposalAction, len(p.Actions))
	copy(actions, p.Actions)
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].Position < actions[j].Position
	})

	bundle := governance.Bundle{
		Targets:         make([]common.Address, 0, len(actions)),
		Values:          make([]*big.Int, 0, len(actions)),
		Calldatas:       make([][]byte, 0, len(actions)),
		DescriptionHash: common.HexToHash(p.DescriptionHash),
	}
	for _, action := range actions {
		value, ok := new(big.Int).SetString(action.Value, 10)
		if !ok {
			return nil, fmt.Errorf("invalid value %q in action %d of proposal %s", action.Value, action.Position, p.ID)
		}
		bundle.Targets = append(bundle.Targets, common.HexToAddress(action.Target))
		bundle.Values = append(bundle.Values, value)
		bundle.Calldatas = append(bundle.Calldatas, action.Calldata)
	}

	return &governance.Proposal{
		ID:             common.HexToHash(p.ID),
		Proposer:       common.HexToAddress(p.Proposer),
		CreationHeight: p.CreationHeight,
		ForVotes:       p.ForVotes,
		AgainstVotes:   p.AgainstVotes,
		AbstainVotes:   p.AbstainVotes,
		Executed:       p.Executed,
		Bundle:         bundle,
	}, nil
}
