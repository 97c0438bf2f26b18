package extension

import (
	"errors"
	"fmt"
	"strings"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrInvalidArgument = errors.New("invalid argument")

var title = cases.Title(language.English)

func DefaultErrorMessage(chatID int64) tgbotapi.Chattable {
	return ErrorMessage(chatID, "Something went wrong, please try again")
}

func ErrorMessage(chatID int64, text string) tgbotapi.Chattable {
	return tgbotapi.NewMessage(chatID, text)
}

// StateLabel renders a proposal state for humans, e.g. "Succeeded".
func StateLabel(state governance.ProposalState) string {
	return title.String(state.String())
}

func ParseProposalID(argument string) (common.Hash, error) {
	argument = strings.TrimSpace(argument)
	raw, err := hexutil.Decode(argument)
	if err != nil || len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q is not a proposal id", ErrInvalidArgument, argument)
	}
	return common.BytesToHash(raw), nil
}

func ParseAddress(argument string) (common.Address, error) {
	argument = strings.TrimSpace(argument)
	if !common.IsHexAddress(argument) {
		return common.Address{}, fmt.Errorf("%w: %q is not an address", ErrInvalidArgument, argument)
	}
	return common.HexToAddress(argument), nil
}

// ShortID abbreviates a proposal id to its first and last four bytes.
func ShortID(id common.Hash) string {
	hex := id.Hex()
	return hex[:10] + "…" + hex[len(hex)-8:]
}

func Tally(proposal *governance.Proposal) string {
	return fmt.Sprintf("for %d / against %d / abstain %d", proposal.ForVotes, proposal.AgainstVotes, proposal.AbstainVotes)
}

// ResolutionText is the chat announcement for a proposal reaching state.
func ResolutionText(proposal *governance.Proposal, state governance.ProposalState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Proposal %s is %s\n", proposal.ID.Hex(), StateLabel(state))
	fmt.Fprintf(&b, "Proposer: %s\n", proposal.Proposer.Hex())
	fmt.Fprintf(&b, "Votes: %s\n", Tally(proposal))
	if state == governance.StateSucceeded {
		fmt.Fprintf(&b, "Ready to execute %d action(s)\n", proposal.Bundle.Len())
	}
	return b.String()
}
