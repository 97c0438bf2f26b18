package commands

import (
	"context"
	"errors"
	"fmt"

	"collector_dao/internal/governance"
	"collector_dao/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const stateCommandName = "state"

type stateCommand struct {
	reader Reader
	logger *zap.SugaredLogger
}

func NewStateCommand(reader Reader, logger *zap.SugaredLogger) Command {
	return &stateCommand{reader: reader, logger: logger}
}

func (c *stateCommand) CanHandle(command string) bool {
	return command == stateCommandName
}

func (c *stateCommand) Handle(ctx context.Context, arguments string, chatID int64) []tgbotapi.Chattable {
	id, err := extension.ParseProposalID(arguments)
	if err != nil {
		return []tgbotapi.Chattable{extension.ErrorMessage(chatID, "Usage: /state <proposal id>")}
	}

	proposal, err := c.reader.Proposal(ctx, id)
	if errors.Is(err, governance.ErrUnknownProposal) {
		return []tgbotapi.Chattable{extension.ErrorMessage(chatID, fmt.Sprintf("Proposal %s does not exist", id.Hex()))}
	}
	if err != nil {
		c.logger.Errorw("failed to get proposal", "proposal_id", id, "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	state, err := c.reader.State(ctx, id)
	if err != nil {
		c.logger.Errorw("failed to get proposal state", "proposal_id", id, "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	messageText := fmt.Sprintf("Proposal %s\nState: %s\nVotes: %s\nCreated at block %d\n",
		id.Hex(), extension.StateLabel(state), extension.Tally(proposal), proposal.CreationHeight)
	return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, messageText)}
}
