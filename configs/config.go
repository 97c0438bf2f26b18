package configs

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type GovernanceAPIConfig struct {
	App     App
	Logger  Logger
	DB      DB
	Engine  Engine
	Clock   Clock
	Ledger  Ledger
	API     API
	Redis   Redis
	Relayer Relayer
}

type GovernanceBotConfig struct {
	App    App
	Logger Logger
	DB     DB
	Engine Engine
	Clock  Clock
	Bot    Bot
}

type ProposalStateServiceConfig struct {
	App          App
	Logger       Logger
	DB           DB
	Engine       Engine
	Clock        Clock
	Notifier     Notifier
	StateService StateService
}

func LoadGovernanceAPIConfig() (GovernanceAPIConfig, error) {
	var config GovernanceAPIConfig

	if err := env.Parse(&config); err != nil {
		return GovernanceAPIConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func LoadGovernanceBotConfig() (GovernanceBotConfig, error) {
	var config GovernanceBotConfig

	if err := env.Parse(&config); err != nil {
		return GovernanceBotConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func LoadProposalStateServiceConfig() (ProposalStateServiceConfig, error) {
	var config ProposalStateServiceConfig

	if err := env.Parse(&config); err != nil {
		return ProposalStateServiceConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
