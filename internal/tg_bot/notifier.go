package tgbot

import (
	"fmt"

	"collector_dao/configs"
	"collector_dao/internal/governance"
	"collector_dao/internal/tg_bot/extension"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier interface {
	NotifyResolution(proposal *governance.Proposal, state governance.ProposalState) error
}

type chatNotifier struct {
	sender Sender
	chatID int64
}

func NewNotifier(sender Sender, chatID int64) Notifier {
	return &chatNotifier{sender: sender, chatID: chatID}
}

func NewTelegramNotifier(config configs.Notifier) (Notifier, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return NewNotifier(api, config.ChatID), nil
}

func (n *chatNotifier) NotifyResolution(proposal *governance.Proposal, state governance.ProposalState) error {
	if !state.Resolved() {
		return fmt.Errorf("proposal %s is %s, not resolved", proposal.ID.Hex(), state)
	}

	message := tgbotapi.NewMessage(n.chatID, extension.ResolutionText(proposal, state))
	message.DisableWebPagePreview = true
	if _, err := n.sender.Send(message); err != nil {
		return fmt.Errorf("failed to send resolution of %s: %w", proposal.ID.Hex(), err)
	}
	return nil
}
