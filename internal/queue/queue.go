package queue

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/store"
	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

// RetryQueue persists token ids whose indexing failed.
// Store failures are logged and swallowed; callers never branch on them.
//
//go:generate mockgen -source=queue.go -destination=../mocks/retry_queue.go -package=mocks -mock_names=RetryQueue=MockRetryQueue
type RetryQueue interface {
	// Enqueue records a failed attempt with attempts = 1
	Enqueue(ctx context.Context, tokenID uint64, errMsg string, operator string)
	// Remove deletes the entry of a token
	Remove(ctx context.Context, tokenID uint64)
	// Update overwrites the attempt count and last error of an entry
	Update(ctx context.Context, tokenID uint64, attempts int, errMsg string)
	// Fetch returns the entries below the attempt ceiling, oldest first
	Fetch(ctx context.Context, attemptCeiling int) []schema.Queue
	// DeadLetters returns the entries at or above the attempt ceiling
	DeadLetters(ctx context.Context, attemptCeiling int) []schema.Queue
}

type retryQueue struct {
	store store.Store
}

func NewRetryQueue(store store.Store) RetryQueue {
	return &retryQueue{store: store}
}

func (q *retryQueue) Enqueue(ctx context.Context, tokenID uint64, errMsg string, operator string) {
	err := q.store.CreateQueueEntry(ctx, tokenID, errMsg, operator)
	switch {
	case err == nil:
		logger.InfoCtx(ctx, "Queued token for retry",
			zap.Uint64("tokenID", tokenID),
			zap.String("reason", errMsg))
	case errors.Is(err, domain.ErrDuplicate):
		logger.WarnCtx(ctx, "Token already queued", zap.Uint64("tokenID", tokenID))
	default:
		logger.ErrorCtx(ctx, err, zap.String("message", "error inserting token to queue"), zap.Uint64("tokenID", tokenID))
	}
}

func (q *retryQueue) Remove(ctx context.Context, tokenID uint64) {
	if err := q.store.DeleteQueueEntry(ctx, tokenID); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "error deleting token from queue"), zap.Uint64("tokenID", tokenID))
	}
}

func (q *retryQueue) Update(ctx context.Context, tokenID uint64, attempts int, errMsg string) {
	if err := q.store.UpdateQueueEntry(ctx, tokenID, attempts, errMsg); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "error updating queue entry"), zap.Uint64("tokenID", tokenID))
	}
}

func (q *retryQueue) Fetch(ctx context.Context, attemptCeiling int) []schema.Queue {
	entries, err := q.store.GetQueueEntries(ctx, attemptCeiling)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "error fetching queue entries"))
		return []schema.Queue{}
	}
	return entries
}

func (q *retryQueue) DeadLetters(ctx context.Context, attemptCeiling int) []schema.Queue {
	entries, err := q.store.GetDeadLetterEntries(ctx, attemptCeiling)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "error fetching dead letter entries"))
		return []schema.Queue{}
	}
	return entries
}
