package sweeper

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/indexer"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/queue"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

// ReconcilerConfig holds configuration for the reconciliation sweep
type ReconcilerConfig struct {
	// AbortOnMissingOperator stops the sweep at the first id without a mint transfer
	AbortOnMissingOperator bool
}

type reconciler struct {
	config   ReconcilerConfig
	contract ethereum.MidiContract
	store    store.Store
	queue    queue.RetryQueue
	indexer  indexer.Indexer
}

// NewReconciler creates a sweeper that indexes every minted id that is neither stored nor queued
func NewReconciler(
	config ReconcilerConfig,
	contract ethereum.MidiContract,
	st store.Store,
	retryQueue queue.RetryQueue,
	idx indexer.Indexer,
) Sweeper {
	return &reconciler{
		config:   config,
		contract: contract,
		store:    st,
		queue:    retryQueue,
		indexer:  idx,
	}
}

func (r *reconciler) Name() string {
	return "reconciler"
}

func (r *reconciler) RunOnce(ctx context.Context) error {
	current, err := r.contract.CurrentTokenID(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current token id: %w", err)
	}

	stored, err := r.store.GetTokenIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stored token ids: %w", err)
	}

	queued, err := r.store.GetQueuedTokenIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queued token ids: %w", err)
	}

	missing := Missing(current, stored, queued)
	logger.InfoCtx(ctx, "Reconciling token ids",
		zap.Uint64("currentTokenID", current),
		zap.Int("stored", len(stored)),
		zap.Int("queued", len(queued)),
		zap.Int("missing", len(missing)))
	if len(missing) == 0 {
		return nil
	}

	operators, err := r.contract.MintOperators(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan mint history: %w", err)
	}

	var indexed, enqueued, unresolved int
	for _, tokenID := range missing {
		if err := ctx.Err(); err != nil {
			return err
		}

		operator, ok := operators[tokenID]
		if !ok {
			ierr := domain.NewIndexError(domain.ErrKindOperatorResolutionFailed, tokenID,
				"no mint transfer found", domain.ErrOperatorNotFound)
			if r.config.AbortOnMissingOperator {
				return ierr
			}
			unresolved++
			logger.WarnCtx(ctx, "Skipping token without mint operator",
				zap.Uint64("tokenID", tokenID),
				zap.Error(ierr))
			continue
		}

		err := r.indexer.IndexByID(ctx, tokenID, operator)
		switch {
		case err == nil:
			indexed++
		case domain.IsInFlight(err), domain.IsDuplicate(err):
			logger.DebugCtx(ctx, "Missing token was indexed concurrently", zap.Uint64("tokenID", tokenID))
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			enqueued++
			r.queue.Enqueue(ctx, tokenID, err.Error(), operator)
		}
	}

	logger.InfoCtx(ctx, "Reconciliation finished",
		zap.Int("indexed", indexed),
		zap.Int("enqueued", enqueued),
		zap.Int("unresolved", unresolved))
	return nil
}

// Missing returns the ids in 1..n that appear in neither stored nor queued, ascending
func Missing(n uint64, stored, queued []uint64) []uint64 {
	known := make(map[uint64]struct{}, len(stored)+len(queued))
	for _, id := range stored {
		known[id] = struct{}{}
	}
	for _, id := range queued {
		known[id] = struct{}{}
	}

	missing := []uint64{}
	for id := uint64(1); id <= n; id++ {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
