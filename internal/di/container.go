package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collector_dao/configs"
	"collector_dao/internal/db"
	"collector_dao/internal/governance"
	"collector_dao/internal/ledger"
	"collector_dao/internal/storage/memory"

	zaploki "github.com/paul-milne/zap-loki"
	"go.uber.org/zap"
)

// NewLogger ships logs to Loki when lokiURL is set. Dev environments get the
// human-readable development encoder.
func NewLogger(appName, environment, lokiURL string) *zap.SugaredLogger {
	zapConfig := zap.NewProductionConfig()
	if environment == "dev" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if lokiURL == "" {
		return zap.Must(zapConfig.Build()).Sugar()
	}

	ctx := context.Background()
	lokiConfig := zaploki.Config{
		Url:          lokiURL,
		BatchMaxSize: 1000,
		BatchMaxWait: 10 * time.Second,
		Labels:       map[string]string{"app": appName, "environment": environment},
	}
	return zap.Must(zaploki.New(ctx, lokiConfig).WithCreateLogger(zapConfig)).Sugar()
}

// NewClock returns the block height source the config selects. The returned
// func releases it.
func NewClock(ctx context.Context, config configs.Clock, logger *zap.SugaredLogger) (governance.Clock, func(), error) {
	if config.RPCURL != "" {
		clock, err := ledger.DialRPCClock(ctx, config.RPCURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Infow("using node block height", "url", config.RPCURL)
		return clock, clock.Close, nil
	}

	clock, err := ledger.NewTimeClock(config.Genesis, config.BlockInterval)
	if err != nil {
		return nil, nil, err
	}
	logger.Infow("using wall clock block height", "genesis", config.Genesis, "interval", config.BlockInterval)
	return clock, func() {}, nil
}

// NewStore starts Postgres when a database url is configured and falls back
// to the in-memory store otherwise.
func NewStore(config configs.DB, logger *zap.SugaredLogger) (governance.Store, func(), error) {
	if config.URL == "" {
		logger.Warn("DATABASE_URL is not set, state will not survive a restart")
		return memory.NewStore(), func() {}, nil
	}

	database, err := db.StartDB(config, logger)
	if err != nil {
		return nil, nil, err
	}
	return db.NewStore(database), func() { _ = database.Close() }, nil
}

// ErrVolatileCustody is returned when a persistent store would be paired with
// the in-memory ledger without LEDGER_ALLOW_VOLATILE. After a restart the
// treasury record survives but the custody balance backing it does not.
var ErrVolatileCustody = errors.New("in-memory ledger cannot back a persistent treasury")

func NewLedger(config configs.Ledger, dbConfig configs.DB, logger *zap.SugaredLogger) (*ledger.Chain, error) {
	if dbConfig.URL != "" {
		if !config.AllowVolatile {
			return nil, fmt.Errorf("%w: set LEDGER_ALLOW_VOLATILE to accept losing custody on restart", ErrVolatileCustody)
		}
		logger.Warn("engine custody is kept in memory and is lost on restart")
	}

	balance, err := config.DefaultBalance()
	if err != nil {
		return nil, err
	}
	return ledger.NewChain(ledger.WithDefaultBalance(balance), ledger.WithChainLogger(logger)), nil
}

func NewEngine(
	config configs.Engine,
	store governance.Store,
	clock governance.Clock,
	l governance.Ledger,
	logger *zap.SugaredLogger,
) (*governance.Engine, error) {
	params, err := config.Params()
	if err != nil {
		return nil, fmt.Errorf("failed to read engine params: %w", err)
	}
	return governance.New(params, store, clock, l, governance.WithLogger(logger))
}
