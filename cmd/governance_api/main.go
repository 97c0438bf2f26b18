package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"collector_dao/configs"
	"collector_dao/internal/api"
	"collector_dao/internal/di"
	"collector_dao/internal/governance"
	"collector_dao/internal/relayer"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := configs.LoadGovernanceAPIConfig()
	logger := di.NewLogger(config.Logger.AppName, config.App.Environment, config.Logger.URL)
	defer func() { _ = logger.Sync() }()

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	if !config.App.IsDevEnvironment() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := di.NewStore(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start store", "error", err)
	}
	defer closeStore()

	clock, closeClock, err := di.NewClock(ctx, config.Clock, logger)
	if err != nil {
		logger.Fatalw("failed to start clock", "error", err)
	}
	defer closeClock()

	chain, err := di.NewLedger(config.Ledger, config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start ledger", "error", err)
	}

	engine, err := di.NewEngine(config.Engine, store, clock, chain, logger)
	if err != nil {
		logger.Fatalw("failed to create engine", "error", err)
	}
	logger.Infow("engine created", "address", engine.Address().Hex(), "voting_period", config.Engine.VotingPeriod)

	r, closeRelayer := startRelayer(ctx, config, engine, logger)
	defer closeRelayer()

	server := &http.Server{
		Addr:    config.API.Addr,
		Handler: api.NewRouter(api.NewHandlers(engine, r, logger)),
	}

	go func() {
		logger.Infow("starting api", "addr", config.API.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("api stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.API.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("failed to shut down api", "error", err)
	}
}

// startRelayer connects to Redis and schedules periodic flushes. Without a
// reachable Redis the api runs without the relay route.
func startRelayer(
	ctx context.Context,
	config configs.GovernanceAPIConfig,
	engine *governance.Engine,
	logger *zap.SugaredLogger,
) (*relayer.Relayer, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnw("redis is unreachable, relayer disabled", "addr", config.Redis.Addr, "error", err)
		_ = client.Close()
		return nil, func() {}
	}

	r := relayer.New(relayer.NewRedisQueue(client, config.Relayer.KeyPrefix), engine, config.Relayer.BatchSize, logger)

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	_, err := s.Every(config.Relayer.FlushInterval).Do(func() {
		if _, err := r.Flush(ctx); err != nil {
			logger.Errorw("failed to flush relayed ballots", "error", err)
		}
	})
	if err != nil {
		logger.Fatalw("failed to schedule relayer", "error", err)
	}
	s.StartAsync()
	logger.Infow("relayer started", "interval", config.Relayer.FlushInterval, "batch_size", config.Relayer.BatchSize)

	return r, func() {
		s.Stop()
		_ = client.Close()
	}
}
