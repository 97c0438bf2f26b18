package handlers

import (
	"context"
	"time"

	"collector_dao/internal/tg_bot/commands"
	"collector_dao/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const commandTimeout = 10 * time.Second

type CommandHandler interface {
	Handle(update tgbotapi.Update) []tgbotapi.Chattable
}

type governanceCommandHandler struct {
	commands []commands.Command
	logger   *zap.SugaredLogger
}

func NewGovernanceCommandHandler(commands []commands.Command, logger *zap.SugaredLogger) CommandHandler {
	return &governanceCommandHandler{commands: commands, logger: logger}
}

func (h *governanceCommandHandler) Handle(update tgbotapi.Update) []tgbotapi.Chattable {
	message := update.Message
	if message == nil || !message.IsCommand() {
		return nil
	}

	return h.tryToHandleCommand(message.Command(), message.CommandArguments(), message.Chat.ID)
}

func (h *governanceCommandHandler) tryToHandleCommand(command, arguments string, chatID int64) []tgbotapi.Chattable {
	for _, c := range h.commands {
		if !c.CanHandle(command) {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		h.logger.Infow("handling command", "command", command, "chat_id", chatID)
		return c.Handle(ctx, arguments, chatID)
	}

	return []tgbotapi.Chattable{extension.ErrorMessage(chatID, "Unknown command, send /start for help")}
}
