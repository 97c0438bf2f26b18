package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// TimeClock derives a block height from wall time: one block per interval
// since genesis.
type TimeClock struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

func NewTimeClock(genesis time.Time, interval time.Duration) (*TimeClock, error) {
	if interval <= 0 {
		return nil, errors.New("block interval must be positive")
	}
	return &TimeClock{genesis: genesis, interval: interval, now: time.Now}, nil
}

func (c *TimeClock) BlockHeight(ctx context.Context) (uint64, error) {
	elapsed := c.now().Sub(c.genesis)
	if elapsed < 0 {
		return 0, nil
	}
	return uint64(elapsed / c.interval), nil
}

// RPCClock reads the latest block number of an Ethereum JSON-RPC endpoint.
type RPCClock struct {
	client *ethclient.Client
}

func DialRPCClock(ctx context.Context, url string) (*RPCClock, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	return &RPCClock{client: client}, nil
}

func (c *RPCClock) BlockHeight(ctx context.Context) (uint64, error) {
	height, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read block number: %w", err)
	}
	return height, nil
}

func (c *RPCClock) Close() {
	c.client.Close()
}
