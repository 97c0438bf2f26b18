package relayer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/redis/go-redis/v9"
)

// SignedBallot is a ballot waiting to be submitted on behalf of its voter.
type SignedBallot struct {
	ProposalID common.Hash        `json:"proposalId"`
	Voter      common.Address     `json:"voter"`
	Support    governance.Support `json:"support"`
	Signature  hexutil.Bytes      `json:"signature"`
}

// Queue holds pending ballots grouped by proposal.
type Queue interface {
	Push(ctx context.Context, ballots ...SignedBallot) error
	// Proposals lists the proposals that have pending ballots.
	Proposals(ctx context.Context) ([]common.Hash, error)
	// Pop removes and returns up to n ballots of proposal id, oldest first.
	Pop(ctx context.Context, id common.Hash, n int) ([]SignedBallot, error)
}

// RedisQueue keeps one list per proposal, storing RLP encoded ballots.
type RedisQueue struct {
	client *redis.Client
	prefix string
}

func NewRedisQueue(client *redis.Client, prefix string) *RedisQueue {
	return &RedisQueue{client: client, prefix: prefix}
}

func (q *RedisQueue) key(id common.Hash) string {
	return q.prefix + id.Hex()
}

func (q *RedisQueue) Push(ctx context.Context, ballots ...SignedBallot) error {
	if len(ballots) == 0 {
		return nil
	}

	pipe := q.client.TxPipeline()
	for _, ballot := range ballots {
		payload, err := rlp.EncodeToBytes(&ballot)
		if err != nil {
			return fmt.Errorf("failed to encode ballot: %w", err)
		}
		pipe.RPush(ctx, q.key(ballot.ProposalID), payload)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to queue ballots: %w", err)
	}
	return nil
}

func (q *RedisQueue) Proposals(ctx context.Context) ([]common.Hash, error) {
	var ids []common.Hash

	iter := q.client.Scan(ctx, 0, q.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		hex := strings.TrimPrefix(iter.Val(), q.prefix)
		if len(hex) != 2+2*common.HashLength {
			continue
		}
		ids = append(ids, common.HexToHash(hex))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan queued proposals: %w", err)
	}

	return ids, nil
}

func (q *RedisQueue) Pop(ctx context.Context, id common.Hash, n int) ([]SignedBallot, error) {
	payloads, err := q.client.LPopCount(ctx, q.key(id), n).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop ballots: %w", err)
	}

	ballots := make([]SignedBallot, 0, len(payloads))
	for _, payload := range payloads {
		var ballot SignedBallot
		if err := rlp.DecodeBytes([]byte(payload), &ballot); err != nil {
			return nil, fmt.Errorf("failed to decode ballot: %w", err)
		}
		ballots = append(ballots, ballot)
	}
	return ballots, nil
}
