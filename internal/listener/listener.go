package listener

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/burn"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/indexer"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/messaging"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/queue"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

// Stream names, also used as block cursor keys
const (
	StreamTransfers = "transfers"
	StreamListings  = "listings"
)

// Config holds the configuration for the event listener
type Config struct {
	// StartBlock overrides the persisted cursors for the first subscription when non-zero
	StartBlock      uint64
	WorkerPoolSize  int
	WorkerQueueSize int
	// Reconnect backoff bounds; zero values use the defaults
	ReconnectInitialInterval time.Duration
	ReconnectMaxInterval     time.Duration
}

// Listener consumes the contract event streams and keeps the mirror current
//
//go:generate mockgen -source=listener.go -destination=../mocks/listener.go -package=mocks -mock_names=Listener=MockListener
type Listener interface {
	// Run blocks until the context is canceled. Subscription failures are retried forever.
	Run(ctx context.Context) error
	// Close closes the underlying subscriber connection
	Close()
}

type listener struct {
	config     Config
	subscriber ethereum.Subscriber
	contract   ethereum.MidiContract
	indexer    indexer.Indexer
	queue      queue.RetryQueue
	burn       burn.Handler
	store      store.Store
	publisher  messaging.Publisher
	clock      adapter.Clock
}

func NewListener(
	config Config,
	subscriber ethereum.Subscriber,
	contract ethereum.MidiContract,
	idx indexer.Indexer,
	retryQueue queue.RetryQueue,
	burnHandler burn.Handler,
	st store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Listener {
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 20
	}
	if config.WorkerQueueSize <= 0 {
		config.WorkerQueueSize = 2048
	}
	if config.ReconnectInitialInterval <= 0 {
		config.ReconnectInitialInterval = 2 * time.Second
	}
	if config.ReconnectMaxInterval <= 0 {
		config.ReconnectMaxInterval = 2 * time.Minute
	}
	return &listener{
		config:     config,
		subscriber: subscriber,
		contract:   contract,
		indexer:    idx,
		queue:      retryQueue,
		burn:       burnHandler,
		store:      st,
		publisher:  publisher,
		clock:      clock,
	}
}

func (l *listener) Run(ctx context.Context) error {
	pool := pond.NewPool(
		l.config.WorkerPoolSize,
		pond.WithQueueSize(l.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)
	logger.InfoCtx(ctx, "Event worker pool created",
		zap.Int("max_concurrency", l.config.WorkerPoolSize),
		zap.Int("queue_size", l.config.WorkerQueueSize))

	defer func() {
		logger.InfoCtx(ctx, "Shutting down event worker pool",
			zap.Uint64("submitted", pool.SubmittedTasks()),
			zap.Uint64("waiting", pool.WaitingTasks()))
		pool.StopAndWait()
		logger.InfoCtx(ctx, "Event worker pool shutdown complete",
			zap.Uint64("completed", pool.CompletedTasks()),
			zap.Uint64("failed", pool.FailedTasks()))
	}()

	transfers, listings := newWatermark(), newWatermark()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return l.runStream(gCtx, StreamTransfers, func(ctx context.Context, fromBlock uint64) error {
			return l.subscriber.SubscribeTransfers(ctx, fromBlock, func(ctx context.Context, event *domain.TransferEvent) error {
				transfers.add(event.BlockNumber)
				pool.Submit(func() {
					l.handleTransfer(ctx, event)
					l.advanceCursor(ctx, StreamTransfers, transfers, event.BlockNumber)
				})
				return nil
			})
		})
	})

	g.Go(func() error {
		return l.runStream(gCtx, StreamListings, func(ctx context.Context, fromBlock uint64) error {
			return l.subscriber.SubscribeListings(ctx, fromBlock, func(ctx context.Context, event *domain.ListingEvent) error {
				listings.add(event.BlockNumber)
				pool.Submit(func() {
					l.handleListing(ctx, event)
					l.advanceCursor(ctx, StreamListings, listings, event.BlockNumber)
				})
				return nil
			})
		})
	})

	return g.Wait()
}

// runStream keeps one subscription alive, reconnecting with exponential backoff
// until the context is canceled
func (l *listener) runStream(ctx context.Context, stream string, subscribe func(ctx context.Context, fromBlock uint64) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = l.config.ReconnectInitialInterval
	bo.MaxInterval = l.config.ReconnectMaxInterval
	bo.MaxElapsedTime = 0 // retry forever
	bo.Reset()

	resumed := false
	for {
		fromBlock, err := l.startBlock(ctx, stream, resumed)
		if err == nil {
			connectedAt := l.clock.Now()
			err = subscribe(ctx, fromBlock)
			if l.clock.Since(connectedAt) > l.config.ReconnectMaxInterval {
				// a long-lived subscription starts the backoff over
				bo.Reset()
			}
		}
		if ctx.Err() != nil {
			logger.InfoCtx(ctx, "Event stream stopped", zap.String("stream", stream))
			return nil
		}

		resumed = true
		wait := bo.NextBackOff()
		logger.ErrorCtx(ctx, fmt.Errorf("%s subscription closed: %w", stream, err),
			zap.Duration("retryIn", wait))

		select {
		case <-ctx.Done():
			return nil
		case <-l.clock.After(wait):
		}
	}
}

// startBlock picks the block a subscription starts from.
// The configured start block only applies to the first subscription;
// a reconnect resumes at the persisted cursor so the last block is replayed.
func (l *listener) startBlock(ctx context.Context, stream string, resumed bool) (uint64, error) {
	if !resumed && l.config.StartBlock > 0 {
		logger.InfoCtx(ctx, "Starting from configured block",
			zap.String("stream", stream),
			zap.Uint64("block", l.config.StartBlock))
		return l.config.StartBlock, nil
	}

	cursor, err := l.store.GetBlockCursor(ctx, stream)
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if cursor > 0 {
		block := cursor + 1
		if resumed {
			block = cursor
		}
		logger.InfoCtx(ctx, "Resuming from last processed block",
			zap.String("stream", stream),
			zap.Uint64("block", block))
		return block, nil
	}

	if resumed && l.config.StartBlock > 0 {
		return l.config.StartBlock, nil
	}

	latest, err := l.subscriber.LatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block",
		zap.String("stream", stream),
		zap.Uint64("block", latest))
	return latest, nil
}

func (l *listener) Close() {
	l.subscriber.Close()
}

// advanceCursor saves the stream cursor once every event up to a block has been handled
func (l *listener) advanceCursor(ctx context.Context, stream string, w *watermark, block uint64) {
	if ctx.Err() != nil {
		return
	}
	block, ok := w.done(block)
	if !ok {
		return
	}
	if err := l.store.SetBlockCursor(ctx, stream, block); err != nil {
		logger.WarnCtx(ctx, "Failed to save block cursor",
			zap.String("stream", stream),
			zap.Uint64("block", block),
			zap.Error(err))
	}
}
