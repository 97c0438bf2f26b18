package commands

import (
	"context"
	"fmt"

	"collector_dao/internal/db/repositories"
	"collector_dao/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const memberCommandName = "member"

type memberCommand struct {
	memberRepository repositories.MemberRepository
	logger           *zap.SugaredLogger
}

func NewMemberCommand(memberRepository repositories.MemberRepository, logger *zap.SugaredLogger) Command {
	return &memberCommand{memberRepository: memberRepository, logger: logger}
}

func (c *memberCommand) CanHandle(command string) bool {
	return command == memberCommandName
}

func (c *memberCommand) Handle(ctx context.Context, arguments string, chatID int64) []tgbotapi.Chattable {
	address, err := extension.ParseAddress(arguments)
	if err != nil {
		return []tgbotapi.Chattable{extension.ErrorMessage(chatID, "Usage: /member <address>")}
	}

	model, err := c.memberRepository.GetOne(ctx, address.Hex())
	if err != nil {
		c.logger.Errorw("failed to get member", "address", address, "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}
	if model == nil {
		return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, fmt.Sprintf("%s is not a member", address.Hex()))}
	}

	member, err := model.ToGovernance()
	if err != nil {
		c.logger.Errorw("failed to decode member", "address", address, "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	messageText := fmt.Sprintf("%s is a member since block %d, fee paid: %s wei",
		member.Address.Hex(), member.JoinedAt, member.FeePaid)
	return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, messageText)}
}
