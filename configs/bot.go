package configs

type Bot struct {
	Token         string `env:"TELEGRAM_GOVERNANCE_BOT_TOKEN,notEmpty"`
	UpdateTimeout int    `env:"TELEGRAM_BOT_UPDATE_TIMEOUT" envDefault:"60"`
}

// Notifier is the chat the proposal state service reports resolutions to.
type Notifier struct {
	Token  string `env:"TELEGRAM_GOVERNANCE_BOT_TOKEN,notEmpty"`
	ChatID int64  `env:"TELEGRAM_GOVERNANCE_CHAT_ID,notEmpty"`
}
