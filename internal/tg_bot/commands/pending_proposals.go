package commands

import (
	"context"
	"fmt"
	"strings"

	"collector_dao/internal"
	"collector_dao/internal/db/repositories"
	"collector_dao/internal/governance"
	"collector_dao/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const pendingProposalsCommandName = "pending_proposals"

type pendingProposalsCommand struct {
	proposalRepository repositories.ProposalRepository
	reader             Reader
	logger             *zap.SugaredLogger
}

func NewPendingProposalsCommand(proposalRepository repositories.ProposalRepository, reader Reader, logger *zap.SugaredLogger) Command {
	return &pendingProposalsCommand{
		proposalRepository: proposalRepository,
		reader:             reader,
		logger:             logger,
	}
}

func (c *pendingProposalsCommand) CanHandle(command string) bool {
	return command == pendingProposalsCommandName
}

func (c *pendingProposalsCommand) Handle(ctx context.Context, _ string, chatID int64) []tgbotapi.Chattable {
	proposals, err := c.proposalRepository.GetManyNotExecuted(ctx)
	if err != nil {
		c.logger.Errorw("failed to get proposals", "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	var messageText strings.Builder
	for _, model := range proposals {
		proposal, err := model.ToGovernance()
		if err != nil {
			c.logger.Errorw("failed to decode proposal", "proposal_id", model.ID, "error", err)
			continue
		}

		state, err := c.reader.State(ctx, proposal.ID)
		if err != nil {
			c.logger.Errorw("failed to get proposal state", "proposal_id", model.ID, "error", err)
			continue
		}
		if state != governance.StateActive {
			continue
		}

		fmt.Fprintf(&messageText, "%s by %s\n", extension.ShortID(proposal.ID), proposal.Proposer.Hex())
		fmt.Fprintf(&messageText, "Votes: %s\n", extension.Tally(proposal))
		fmt.Fprintf(&messageText, "Actions: %d, created at block %d on %s\n\n",
			proposal.Bundle.Len(), proposal.CreationHeight, internal.FormatDate(model.CreatedAt))
	}

	if messageText.Len() == 0 {
		return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, "No proposals are open for voting")}
	}
	return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, messageText.String())}
}
