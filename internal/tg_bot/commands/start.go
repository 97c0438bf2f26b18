package commands

import (
	"context"
	"fmt"
	"strings"

	"collector_dao/configs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const startCommandName = "start"

type startCommand struct {
	loggerConfig configs.Logger
}

func NewStartCommand(loggerConfig configs.Logger) Command {
	return &startCommand{loggerConfig: loggerConfig}
}

func (c *startCommand) CanHandle(command string) bool {
	return command == startCommandName
}

func (c *startCommand) Handle(_ context.Context, _ string, chatID int64) []tgbotapi.Chattable {
	parseMode := tgbotapi.ModeMarkdownV2

	messageText := tgbotapi.EscapeText(parseMode, fmt.Sprintf(`
Hi! I am the %s bot and here is what I can do:

/state <proposal id> - shows the current state of a proposal and its votes.
/member <address> - tells whether an address is a member of the collective.
/pending_proposals - lists the proposals that are open for voting.
/treasury - shows the membership fees collected so far.

Press Menu to see every available command.
`, c.loggerConfig.AppName))
	messageText = strings.Replace(messageText, "Menu", "*Menu*", -1)
	message := tgbotapi.NewMessage(chatID, messageText)
	message.ParseMode = parseMode
	return []tgbotapi.Chattable{message}
}
