package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"collector_dao/configs"
	"collector_dao/internal/db"
	"collector_dao/internal/db/models"
	"collector_dao/internal/db/repositories"
	"collector_dao/internal/di"
	"collector_dao/internal/governance"
	"collector_dao/internal/ledger"
	tgbot "collector_dao/internal/tg_bot"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

type stateReader interface {
	State(ctx context.Context, id common.Hash) (governance.ProposalState, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := gocron.NewScheduler(time.UTC)

	config, err := configs.LoadProposalStateServiceConfig()
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

	engine, err := di.NewEngine(config.Engine, db.NewStore(database), clock, ledger.NewChain(), logger)
	if err != nil {
		logger.Fatalw("failed to create engine", "error", err)
	}

	notifier, err := tgbot.NewTelegramNotifier(config.Notifier)
	if err != nil {
		logger.Fatalw("failed to create notifier", "error", err)
	}

	proposalRepository := repositories.NewProposalRepository(database)

	s.SingletonModeAll()
	_, err = s.Cron(config.StateService.Schedule).Do(func() {
		logger.Info("checking proposal states")
		announced := announceResolutions(ctx, proposalRepository, engine, notifier, logger)
		if announced == 0 {
			logger.Info("no resolutions to announce")
		} else {
			logger.Infow("resolutions announced", "count", announced)
		}
	})
	if err != nil {
		logger.Fatalw("failed to schedule state checks", "schedule", config.StateService.Schedule, "error", err)
	}

	s.StartAsync()
	<-ctx.Done()
	s.Stop()
	logger.Info("stopped")
}

// announceResolutions notifies every proposal whose derived state moved to a
// resolution that has not been announced yet and records the announcement.
func announceResolutions(
	ctx context.Context,
	proposalRepository repositories.ProposalRepository,
	reader stateReader,
	notifier tgbot.Notifier,
	logger *zap.SugaredLogger,
) int {
	proposals, err := proposalRepository.GetManyUnannounced(ctx)
	if err != nil {
		logger.Errorw("failed to get proposals", "error", err)
		return 0
	}

	announced := 0
	for _, model := range proposals {
		proposal, err := model.ToGovernance()
		if err != nil {
			logger.Errorw("failed to decode proposal", "proposal_id", model.ID, "error", err)
			continue
		}

		state, err := reader.State(ctx, proposal.ID)
		if err != nil {
			logger.Errorw("failed to get proposal state", "proposal_id", model.ID, "error", err)
			continue
		}
		if !needsAnnouncement(model, state) {
			continue
		}

		if err := notifier.NotifyResolution(proposal, state); err != nil {
			logger.Errorw("failed to notify resolution", "proposal_id", model.ID, "state", state, "error", err)
			continue
		}
		if err := proposalRepository.MarkAnnounced(ctx, model.ID, state); err != nil {
			logger.Errorw("failed to mark proposal announced", "proposal_id", model.ID, "state", state, "error", err)
			continue
		}

		announced++
	}

	return announced
}

func needsAnnouncement(proposal *models.Proposal, state governance.ProposalState) bool {
	if !state.Resolved() {
		return false
	}
	// unset or unreadable announcements are repeated
	announced, err := governance.ParseProposalState(proposal.AnnouncedState)
	return err != nil || announced != state
}
