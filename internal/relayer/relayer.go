// Package relayer accepts signed ballots off the interactive path and submits
// them in batches through the bulk ballot primitive.
package relayer

import (
	"context"
	"fmt"

	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type Engine interface {
	VerifyVote(signature []byte, voter common.Address, id common.Hash, support governance.Support) (bool, error)
	CastVoteBySigBulk(
		ctx context.Context,
		signatures [][]byte,
		voters []common.Address,
		id common.Hash,
		supports []governance.Support,
	) (governance.BulkReceipt, error)
}

type Relayer struct {
	queue     Queue
	engine    Engine
	batchSize int
	logger    *zap.SugaredLogger
}

func New(queue Queue, engine Engine, batchSize int, logger *zap.SugaredLogger) *Relayer {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relayer{queue: queue, engine: engine, batchSize: batchSize, logger: logger}
}

// Submit queues ballot after checking its support value and signature. The
// remaining checks happen when the batch is applied.
func (r *Relayer) Submit(ctx context.Context, ballot SignedBallot) error {
	if !ballot.Support.Valid() {
		return fmt.Errorf("%w: %d", governance.ErrInvalidSupport, ballot.Support)
	}

	valid, err := r.engine.VerifyVote(ballot.Signature, ballot.Voter, ballot.ProposalID, ballot.Support)
	if err != nil {
		return fmt.Errorf("%w: %w", governance.ErrInvalidSignature, err)
	}
	if !valid {
		return governance.ErrInvalidSignature
	}

	if err := r.queue.Push(ctx, ballot); err != nil {
		return err
	}

	r.logger.Debugw("ballot queued", "proposal", ballot.ProposalID.Hex(), "voter", ballot.Voter.Hex())
	return nil
}

// FlushResult sums the receipts of one flush.
type FlushResult struct {
	Batches  int
	Applied  int
	Skipped  int
	Requeued int
}

// Flush drains the queue. A batch that fails as a whole is put back, and so
// is every ballot skipped for a reason other than a rejection. Either way the
// proposal is retried on the next flush.
func (r *Relayer) Flush(ctx context.Context) (FlushResult, error) {
	var result FlushResult

	ids, err := r.queue.Proposals(ctx)
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := r.flushProposal(ctx, id, &result); err != nil {
			r.logger.Errorw("failed to flush ballots", "proposal", id.Hex(), "error", err)
		}
	}

	if result.Batches > 0 {
		r.logger.Infow("ballots flushed",
			"batches", result.Batches,
			"applied", result.Applied,
			"skipped", result.Skipped,
			"requeued", result.Requeued,
		)
	}
	return result, nil
}

func (r *Relayer) flushProposal(ctx context.Context, id common.Hash, result *FlushResult) error {
	for {
		ballots, err := r.queue.Pop(ctx, id, r.batchSize)
		if err != nil {
			return err
		}
		if len(ballots) == 0 {
			return nil
		}

		signatures := make([][]byte, len(ballots))
		voters := make([]common.Address, len(ballots))
		supports := make([]governance.Support, len(ballots))
		for i, ballot := range ballots {
			signatures[i] = ballot.Signature
			voters[i] = ballot.Voter
			supports[i] = ballot.Support
		}

		receipt, err := r.engine.CastVoteBySigBulk(ctx, signatures, voters, id, supports)
		if err != nil {
			if requeueErr := r.queue.Push(ctx, ballots...); requeueErr != nil {
				r.logger.Errorw("failed to requeue ballots", "proposal", id.Hex(), "count", len(ballots), "error", requeueErr)
			}
			return err
		}

		result.Batches++
		result.Applied += receipt.Applied

		var requeue []SignedBallot
		for _, skipped := range receipt.Skipped {
			if !governance.IsRejection(skipped.Reason) {
				requeue = append(requeue, ballots[skipped.Index])
				r.logger.Warnw("relayed ballot failed, requeueing",
					"proposal", id.Hex(),
					"voter", skipped.Voter.Hex(),
					"error", skipped.Reason,
				)
				continue
			}
			result.Skipped++
			r.logger.Infow("relayed ballot skipped",
				"proposal", id.Hex(),
				"voter", skipped.Voter.Hex(),
				"reason", governance.ErrorCode(skipped.Reason),
			)
		}

		// requeued ballots wait for the next flush so a persistent failure cannot spin here
		if len(requeue) > 0 {
			result.Requeued += len(requeue)
			return r.queue.Push(ctx, requeue...)
		}
		if len(ballots) < r.batchSize {
			return nil
		}
	}
}
