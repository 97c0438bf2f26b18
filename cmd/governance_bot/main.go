package main

import (
	"context"
	"os/signal"
	"syscall"

	"collector_dao/configs"
	"collector_dao/internal/db"
	"collector_dao/internal/db/repositories"
	"collector_dao/internal/di"
	"collector_dao/internal/ledger"
	tgbot "collector_dao/internal/tg_bot"
	"collector_dao/internal/tg_bot/commands"
	"collector_dao/internal/tg_bot/handlers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := configs.LoadGovernanceBotConfig()
	logger := di.NewLogger(config.Logger.AppName, config.App.Environment, config.Logger.URL)

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	if config.DB.URL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	defer database.Close()
	logger.Info("db started")

	clock, closeClock, err := di.NewClock(ctx, config.Clock, logger)
	if err != nil {
		logger.Fatalw("failed to start clock", "error", err)
	}
	defer closeClock()

	// The bot only reads, the ledger is never touched.
	engine, err := di.NewEngine(config.Engine, db.NewStore(database), clock, ledger.NewChain(), logger)
	if err != nil {
		logger.Fatalw("failed to create engine", "error", err)
	}

	logger.Info("starting bot")
	proposalRepository := repositories.NewProposalRepository(database)
	memberRepository := repositories.NewMemberRepository(database)

	tgbot.NewBot(
		handlers.NewGovernanceCommandHandler(
			[]commands.Command{
				commands.NewStartCommand(config.Logger),
				commands.NewStateCommand(engine, logger),
				commands.NewMemberCommand(memberRepository, logger),
				commands.NewTreasuryCommand(engine, logger),
				commands.NewPendingProposalsCommand(proposalRepository, engine, logger),
			},
			logger,
		),
	).Start(ctx, config, logger)
}
