package listener

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonobay/sonobay-indexer/internal/burn"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/mocks"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

const (
	testOperator = "0x1111111111111111111111111111111111111111"
	testHolder   = "0x2222222222222222222222222222222222222222"
)

type testListenerMocks struct {
	subscriber *mocks.MockSubscriber
	contract   *mocks.MockMidiContract
	indexer    *mocks.MockIndexer
	queue      *mocks.MockRetryQueue
	burn       *mocks.MockBurnHandler
	store      *mocks.MockStore
	publisher  *mocks.MockPublisher
	clock      *mocks.MockClock
	listener   *listener
}

func setupTestListener(t *testing.T, cfg Config) *testListenerMocks {
	ctrl := gomock.NewController(t)
	tm := &testListenerMocks{
		subscriber: mocks.NewMockSubscriber(ctrl),
		contract:   mocks.NewMockMidiContract(ctrl),
		indexer:    mocks.NewMockIndexer(ctrl),
		queue:      mocks.NewMockRetryQueue(ctrl),
		burn:       mocks.NewMockBurnHandler(ctrl),
		store:      mocks.NewMockStore(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
	tm.listener = NewListener(cfg, tm.subscriber, tm.contract, tm.indexer, tm.queue, tm.burn,
		tm.store, tm.publisher, tm.clock).(*listener)
	return tm
}

func mintEvent(id uint64) *domain.TransferEvent {
	return &domain.TransferEvent{
		Operator:    testOperator,
		From:        domain.ETHEREUM_ZERO_ADDRESS,
		To:          testOperator,
		TokenID:     id,
		Value:       "1",
		BlockNumber: 120,
	}
}

func TestHandleTransfer_Mint(t *testing.T) {
	ctx := context.Background()

	t.Run("indexed", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.indexer.EXPECT().IndexByID(ctx, uint64(1), testOperator).Return(nil)
		tm.contract.EXPECT().TotalSupply(ctx, uint64(1)).Return(uint64(50), nil)
		tm.store.EXPECT().UpdateTokenSupply(ctx, uint64(1), uint64(50)).Return(nil)
		tm.listener.handleTransfer(ctx, mintEvent(1))
	})

	t.Run("burned while indexing is removed", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		gomock.InOrder(
			tm.indexer.EXPECT().IndexByID(ctx, uint64(8), testOperator).Return(nil),
			tm.contract.EXPECT().TotalSupply(ctx, uint64(8)).Return(uint64(0), nil),
			tm.burn.EXPECT().HandleBurn(ctx, uint64(8)).Return(&burn.Result{TokenID: 8, Deleted: true}, nil),
		)
		tm.listener.handleTransfer(ctx, mintEvent(8))
	})

	t.Run("supply read failure keeps the token", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.indexer.EXPECT().IndexByID(ctx, uint64(10), testOperator).Return(nil)
		tm.contract.EXPECT().TotalSupply(ctx, uint64(10)).Return(uint64(0), errors.New("rpc down"))
		tm.listener.handleTransfer(ctx, mintEvent(10))
	})

	t.Run("failure is enqueued", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		indexErr := domain.NewIndexError(domain.ErrKindMetadataUnavailable, 2, "failed fetching metadata", nil)
		tm.indexer.EXPECT().IndexByID(ctx, uint64(2), testOperator).Return(indexErr)
		tm.queue.EXPECT().Enqueue(ctx, uint64(2), indexErr.Error(), testOperator)
		tm.listener.handleTransfer(ctx, mintEvent(2))
	})

	t.Run("in flight is skipped", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.indexer.EXPECT().IndexByID(ctx, uint64(3), testOperator).
			Return(domain.NewIndexError(domain.ErrKindInFlight, 3, "", nil))
		tm.listener.handleTransfer(ctx, mintEvent(3))
	})

	t.Run("duplicate refreshes supply", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.indexer.EXPECT().IndexByID(ctx, uint64(4), testOperator).
			Return(domain.NewIndexError(domain.ErrKindPersistenceError, 4, "", fmt.Errorf("insert: %w", domain.ErrDuplicate)))
		tm.contract.EXPECT().TotalSupply(ctx, uint64(4)).Return(uint64(12), nil)
		tm.store.EXPECT().UpdateTokenSupply(ctx, uint64(4), uint64(12)).Return(nil)
		tm.listener.handleTransfer(ctx, mintEvent(4))
	})
}

func TestHandleTransfer_BurnAndTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("burn", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.burn.EXPECT().HandleBurn(ctx, uint64(5)).Return(&burn.Result{TokenID: 5, Deleted: true}, nil)
		tm.listener.handleTransfer(ctx, &domain.TransferEvent{
			From: testHolder, To: domain.ETHEREUM_ZERO_ADDRESS, TokenID: 5,
		})
	})

	t.Run("burn failure is logged", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.burn.EXPECT().HandleBurn(ctx, uint64(6)).Return(nil, errors.New("rpc down"))
		tm.listener.handleTransfer(ctx, &domain.TransferEvent{
			From: testHolder, To: domain.ETHEREUM_ZERO_ADDRESS, TokenID: 6,
		})
	})

	t.Run("secondary transfer ignored", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.listener.handleTransfer(ctx, &domain.TransferEvent{
			From: testHolder, To: testOperator, TokenID: 7,
		})
	})
}

func TestHandleListing(t *testing.T) {
	ctx := context.Background()
	event := &domain.ListingEvent{
		TokenID:        8,
		ListingAddress: "0x3333333333333333333333333333333333333333",
		Amount:         big.NewInt(2),
		Price:          big.NewInt(1_000_000),
		Lister:         testHolder,
		TxHash:         "0xabc",
		LogIndex:       4,
		BlockNumber:    77,
	}

	t.Run("new listing is stored and published", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.store.EXPECT().
			CreateListing(ctx, store.CreateListingInput{
				ListingAddress: event.ListingAddress,
				TokenID:        8,
				Amount:         "2",
				Price:          "1000000",
				SellerAddress:  testHolder,
				TxHash:         "0xabc",
				LogIndex:       4,
				BlockNumber:    77,
			}).
			Return(true, nil)
		tm.publisher.EXPECT().
			Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, n domain.Notification) error {
				assert.Equal(t, domain.NotificationListingCreated, n.Type)
				assert.Equal(t, "1000000", n.Price)
				assert.Equal(t, event.TxHash, n.TxHash)
				return nil
			})
		tm.listener.handleListing(ctx, event)
	})

	t.Run("redelivered listing is not published", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.store.EXPECT().CreateListing(ctx, gomock.Any()).Return(false, nil)
		tm.listener.handleListing(ctx, event)
	})

	t.Run("store failure", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.store.EXPECT().CreateListing(ctx, gomock.Any()).Return(false, errors.New("down"))
		tm.listener.handleListing(ctx, event)
	})
}

func TestStartBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("configured start block", func(t *testing.T) {
		tm := setupTestListener(t, Config{StartBlock: 500})
		block, err := tm.listener.startBlock(ctx, StreamTransfers, false)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), block)
	})

	t.Run("cursor plus one", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.store.EXPECT().GetBlockCursor(ctx, StreamTransfers).Return(uint64(41), nil)
		block, err := tm.listener.startBlock(ctx, StreamTransfers, false)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), block)
	})

	t.Run("reconnect replays cursor block", func(t *testing.T) {
		tm := setupTestListener(t, Config{StartBlock: 500})
		tm.store.EXPECT().GetBlockCursor(ctx, StreamListings).Return(uint64(900), nil)
		block, err := tm.listener.startBlock(ctx, StreamListings, true)
		require.NoError(t, err)
		assert.Equal(t, uint64(900), block)
	})

	t.Run("head when no cursor", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.store.EXPECT().GetBlockCursor(ctx, StreamListings).Return(uint64(0), nil)
		tm.subscriber.EXPECT().LatestBlock(ctx).Return(uint64(1234), nil)
		block, err := tm.listener.startBlock(ctx, StreamListings, false)
		require.NoError(t, err)
		assert.Equal(t, uint64(1234), block)
	})

	t.Run("cursor read failure", func(t *testing.T) {
		tm := setupTestListener(t, Config{})
		tm.store.EXPECT().GetBlockCursor(ctx, StreamListings).Return(uint64(0), errors.New("down"))
		_, err := tm.listener.startBlock(ctx, StreamListings, false)
		require.Error(t, err)
	})
}

func TestRun_DispatchesAndReconnects(t *testing.T) {
	tm := setupTestListener(t, Config{WorkerPoolSize: 2, WorkerQueueSize: 4})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	ready := make(chan time.Time)
	close(ready)
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Millisecond).AnyTimes()
	tm.clock.EXPECT().After(gomock.Any()).Return(ready).AnyTimes()

	gomock.InOrder(
		tm.store.EXPECT().GetBlockCursor(gomock.Any(), StreamTransfers).Return(uint64(100), nil),
		tm.store.EXPECT().GetBlockCursor(gomock.Any(), StreamTransfers).Return(uint64(100), nil),
	)
	tm.store.EXPECT().GetBlockCursor(gomock.Any(), StreamListings).Return(uint64(0), nil)
	tm.subscriber.EXPECT().LatestBlock(gomock.Any()).Return(uint64(300), nil)

	gomock.InOrder(
		// first subscription drops, the reconnect resumes at the cursor block
		tm.subscriber.EXPECT().SubscribeTransfers(gomock.Any(), uint64(101), gomock.Any()).
			Return(fmt.Errorf("%w: transfers: websocket closed", domain.ErrSubscriptionFailed)),
		tm.subscriber.EXPECT().SubscribeTransfers(gomock.Any(), uint64(100), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ uint64, handler ethereum.TransferHandler) error {
				require.NoError(t, handler(ctx, mintEvent(9)))
				<-ctx.Done()
				return ctx.Err()
			}),
	)
	tm.subscriber.EXPECT().SubscribeListings(gomock.Any(), uint64(300), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ uint64, _ ethereum.ListingHandler) error {
			<-ctx.Done()
			return ctx.Err()
		})

	cursorSaved := make(chan struct{})
	tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(9), testOperator).Return(nil)
	tm.contract.EXPECT().TotalSupply(gomock.Any(), uint64(9)).Return(uint64(1), nil)
	tm.store.EXPECT().UpdateTokenSupply(gomock.Any(), uint64(9), uint64(1)).Return(nil)
	tm.store.EXPECT().SetBlockCursor(gomock.Any(), StreamTransfers, uint64(120)).
		DoAndReturn(func(context.Context, string, uint64) error {
			close(cursorSaved)
			return nil
		})

	done := make(chan error, 1)
	go func() { done <- tm.listener.Run(ctx) }()

	select {
	case <-cursorSaved:
	case <-time.After(5 * time.Second):
		t.Fatal("event was not processed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestRun_CursorWaitsForSlowerLowerBlock(t *testing.T) {
	tm := setupTestListener(t, Config{StartBlock: 10, WorkerPoolSize: 2, WorkerQueueSize: 4})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Millisecond).AnyTimes()

	slow, fast := mintEvent(1), mintEvent(2)
	slow.BlockNumber, fast.BlockNumber = 10, 11

	tm.subscriber.EXPECT().SubscribeTransfers(gomock.Any(), uint64(10), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ uint64, handler ethereum.TransferHandler) error {
			require.NoError(t, handler(ctx, slow))
			require.NoError(t, handler(ctx, fast))
			<-ctx.Done()
			return ctx.Err()
		})
	tm.subscriber.EXPECT().SubscribeListings(gomock.Any(), uint64(10), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ uint64, _ ethereum.ListingHandler) error {
			<-ctx.Done()
			return ctx.Err()
		})

	release := make(chan struct{})
	var slowFinished atomic.Bool
	tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(1), testOperator).
		DoAndReturn(func(context.Context, uint64, string) error {
			<-release
			slowFinished.Store(true)
			return nil
		})
	tm.contract.EXPECT().TotalSupply(gomock.Any(), uint64(1)).Return(uint64(1), nil)
	tm.store.EXPECT().UpdateTokenSupply(gomock.Any(), uint64(1), uint64(1)).Return(nil)

	fastDone := make(chan struct{})
	tm.indexer.EXPECT().IndexByID(gomock.Any(), uint64(2), testOperator).Return(nil)
	tm.contract.EXPECT().TotalSupply(gomock.Any(), uint64(2)).Return(uint64(1), nil)
	tm.store.EXPECT().UpdateTokenSupply(gomock.Any(), uint64(2), uint64(1)).
		DoAndReturn(func(context.Context, uint64, uint64) error {
			close(fastDone)
			return nil
		})

	saved := make(chan uint64, 4)
	tm.store.EXPECT().SetBlockCursor(gomock.Any(), StreamTransfers, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, block uint64) error {
			assert.True(t, slowFinished.Load(), "cursor saved at %d while block 10 was running", block)
			saved <- block
			return nil
		})

	done := make(chan error, 1)
	go func() { done <- tm.listener.Run(ctx) }()

	select {
	case <-fastDone:
	case <-time.After(5 * time.Second):
		t.Fatal("block 11 was not processed")
	}
	assert.Never(t, func() bool { return len(saved) > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	close(release)
	select {
	case block := <-saved:
		assert.Equal(t, uint64(11), block)
	case <-time.After(5 * time.Second):
		t.Fatal("cursor was not saved")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
}
