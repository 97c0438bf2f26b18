package commands

import (
	"context"
	"fmt"

	"collector_dao/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const treasuryCommandName = "treasury"

type treasuryCommand struct {
	reader Reader
	logger *zap.SugaredLogger
}

func NewTreasuryCommand(reader Reader, logger *zap.SugaredLogger) Command {
	return &treasuryCommand{reader: reader, logger: logger}
}

func (c *treasuryCommand) CanHandle(command string) bool {
	return command == treasuryCommandName
}

func (c *treasuryCommand) Handle(ctx context.Context, _ string, chatID int64) []tgbotapi.Chattable {
	total, err := c.reader.Treasury(ctx)
	if err != nil {
		c.logger.Errorw("failed to get treasury", "error", err)
		return []tgbotapi.Chattable{extension.DefaultErrorMessage(chatID)}
	}

	return []tgbotapi.Chattable{tgbotapi.NewMessage(chatID, fmt.Sprintf("Membership fees collected: %s wei", total))}
}
