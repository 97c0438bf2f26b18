package api

import (
	"errors"
	"fmt"
	"math/big"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

var errMissingField = errors.New("missing field")

type joinRequest struct {
	Account common.Address        `json:"account"`
	Paid    *math.HexOrDecimal256 `json:"paid"`
}

type bundleDTO struct {
	Targets         []common.Address        `json:"targets"`
	Values          []*math.HexOrDecimal256 `json:"values"`
	Calldatas       []hexutil.Bytes         `json:"calldatas"`
	DescriptionHash common.Hash             `json:"descriptionHash"`
}

func (b bundleDTO) toBundle() governance.Bundle {
	bundle := governance.Bundle{
		Targets:         b.Targets,
		Values:          make([]*big.Int, len(b.Values)),
		Calldatas:       make([][]byte, len(b.Calldatas)),
		DescriptionHash: b.DescriptionHash,
	}
	for i, value := range b.Values {
		if value != nil {
			bundle.Values[i] = (*big.Int)(value)
		}
	}
	for i, data := range b.Calldatas {
		bundle.Calldatas[i] = data
	}
	return bundle
}

func newBundleDTO(bundle governance.Bundle) bundleDTO {
	dto := bundleDTO{
		Targets:         bundle.Targets,
		Values:          make([]*math.HexOrDecimal256, len(bundle.Values)),
		Calldatas:       make([]hexutil.Bytes, len(bundle.Calldatas)),
		DescriptionHash: bundle.DescriptionHash,
	}
	for i, value := range bundle.Values {
		dto.Values[i] = (*math.HexOrDecimal256)(value)
	}
	for i, data := range bundle.Calldatas {
		dto.Calldatas[i] = data
	}
	return dto
}

type proposeRequest struct {
	Proposer common.Address `json:"proposer"`
	Bundle   bundleDTO      `json:"bundle"`
}

type ballotRequest struct {
	ProposalID common.Hash    `json:"proposalId"`
	Voter      common.Address `json:"voter"`
	Support    uint8          `json:"support"`
	Signature  hexutil.Bytes  `json:"signature"`
}

func (r ballotRequest) validate() error {
	if r.Voter == (common.Address{}) {
		return fmt.Errorf("%w: voter", errMissingField)
	}
	return nil
}

type bulkBallotRequest struct {
	ProposalID common.Hash      `json:"proposalId"`
	Voters     []common.Address `json:"voters"`
	Supports   []int            `json:"supports"`
	Signatures []hexutil.Bytes  `json:"signatures"`
}

func (r bulkBallotRequest) arrays() ([][]byte, []governance.Support) {
	signatures := make([][]byte, len(r.Signatures))
	for i, signature := range r.Signatures {
		signatures[i] = signature
	}
	supports := make([]governance.Support, len(r.Supports))
	for i, support := range r.Supports {
		supports[i] = toSupport(support)
	}
	return signatures, supports
}

// toSupport maps values outside uint8 to an invalid support so the ballot is
// skipped instead of wrapping around to a valid choice.
func toSupport(value int) governance.Support {
	if value < 0 || value > 255 {
		return governance.Support(255)
	}
	return governance.Support(value)
}

type skippedBallotResponse struct {
	Index  int            `json:"index"`
	Voter  common.Address `json:"voter"`
	Reason string         `json:"reason"`
}

type bulkReceiptResponse struct {
	ProposalID common.Hash             `json:"proposalId"`
	Applied    int                     `json:"applied"`
	Skipped    []skippedBallotResponse `json:"skipped"`
}

func newBulkReceiptResponse(receipt governance.BulkReceipt) bulkReceiptResponse {
	response := bulkReceiptResponse{
		ProposalID: receipt.ProposalID,
		Applied:    receipt.Applied,
		Skipped:    make([]skippedBallotResponse, 0, len(receipt.Skipped)),
	}
	for _, skipped := range receipt.Skipped {
		response.Skipped = append(response.Skipped, skippedBallotResponse{
			Index:  skipped.Index,
			Voter:  skipped.Voter,
			Reason: governance.ErrorCode(skipped.Reason),
		})
	}
	return response
}

type proposalResponse struct {
	ID             common.Hash              `json:"id"`
	Proposer       common.Address           `json:"proposer"`
	CreationHeight uint64                   `json:"creationHeight"`
	ForVotes       uint64                   `json:"forVotes"`
	AgainstVotes   uint64                   `json:"againstVotes"`
	AbstainVotes   uint64                   `json:"abstainVotes"`
	Executed       bool                     `json:"executed"`
	State          governance.ProposalState `json:"state"`
	Bundle         bundleDTO                `json:"bundle"`
}

func newProposalResponse(proposal *governance.Proposal, state governance.ProposalState) proposalResponse {
	return proposalResponse{
		ID:             proposal.ID,
		Proposer:       proposal.Proposer,
		CreationHeight: proposal.CreationHeight,
		ForVotes:       proposal.ForVotes,
		AgainstVotes:   proposal.AgainstVotes,
		AbstainVotes:   proposal.AbstainVotes,
		Executed:       proposal.Executed,
		State:          state,
		Bundle:         newBundleDTO(proposal.Bundle),
	}
}
