package sweeper

import (
	"context"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/indexer"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/queue"
)

// QueueDrainConfig holds configuration for the retry queue drain
type QueueDrainConfig struct {
	AttemptCeiling int
}

type queueDrain struct {
	config  QueueDrainConfig
	queue   queue.RetryQueue
	indexer indexer.Indexer
}

// NewQueueDrain creates a sweeper that retries queued tokens below the attempt ceiling
func NewQueueDrain(config QueueDrainConfig, retryQueue queue.RetryQueue, idx indexer.Indexer) Sweeper {
	if config.AttemptCeiling <= 0 {
		config.AttemptCeiling = domain.DEFAULT_QUEUE_ATTEMPT_CEILING
	}
	return &queueDrain{
		config:  config,
		queue:   retryQueue,
		indexer: idx,
	}
}

func (d *queueDrain) Name() string {
	return "queue-drain"
}

func (d *queueDrain) RunOnce(ctx context.Context) error {
	entries := d.queue.Fetch(ctx, d.config.AttemptCeiling)
	if len(entries) == 0 {
		logger.DebugCtx(ctx, "Retry queue is empty")
		return nil
	}

	logger.InfoCtx(ctx, "Draining retry queue", zap.Int("count", len(entries)))

	var indexed, failed int
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		tokenID := uint64(entry.ID) //nolint:gosec,G115
		err := d.indexer.IndexByID(ctx, tokenID, entry.Operator)
		switch {
		case err == nil:
			indexed++
			d.queue.Remove(ctx, tokenID)
		case domain.IsInFlight(err):
			logger.DebugCtx(ctx, "Queued token is being indexed elsewhere", zap.Uint64("tokenID", tokenID))
		case domain.IsDuplicate(err):
			logger.InfoCtx(ctx, "Queued token already indexed", zap.Uint64("tokenID", tokenID))
			d.queue.Remove(ctx, tokenID)
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			failed++
			attempts := entry.Attempts + 1
			d.queue.Update(ctx, tokenID, attempts, err.Error())
			if attempts >= d.config.AttemptCeiling {
				logger.WarnCtx(ctx, "Token reached the attempt ceiling",
					zap.Uint64("tokenID", tokenID),
					zap.Int("attempts", attempts),
					zap.Error(err))
			}
		}
	}

	logger.InfoCtx(ctx, "Retry queue drained",
		zap.Int("indexed", indexed),
		zap.Int("failed", failed))
	return nil
}
