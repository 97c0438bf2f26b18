package commands

import (
	"context"
	"math/big"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Command interface {
	CanHandle(command string) bool
	Handle(ctx context.Context, arguments string, chatID int64) []tgbotapi.Chattable
}

// Reader is the read-only view of the governance engine the bot answers from.
type Reader interface {
	Proposal(ctx context.Context, id common.Hash) (*governance.Proposal, error)
	State(ctx context.Context, id common.Hash) (governance.ProposalState, error)
	Treasury(ctx context.Context) (*big.Int, error)
}
