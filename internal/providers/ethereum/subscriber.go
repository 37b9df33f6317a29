package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
)

// TransferHandler handles a decoded TransferSingle event
type TransferHandler func(ctx context.Context, event *domain.TransferEvent) error

// ListingHandler handles a decoded ListingCreated event
type ListingHandler func(ctx context.Context, event *domain.ListingEvent) error

// Subscriber streams contract events over a websocket connection
//
//go:generate mockgen -source=subscriber.go -destination=../../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeTransfers streams TransferSingle events of the midi contract starting at fromBlock.
	// It blocks until the context is done or the subscription fails.
	SubscribeTransfers(ctx context.Context, fromBlock uint64, handler TransferHandler) error

	// SubscribeListings streams ListingCreated events of the market contract starting at fromBlock.
	// It blocks until the context is done or the subscription fails.
	SubscribeListings(ctx context.Context, fromBlock uint64, handler ListingHandler) error

	// LatestBlock returns the latest block number
	LatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection
	Close()
}

// SubscriberConfig holds the configuration for event subscriptions
type SubscriberConfig struct {
	ChainID       domain.Chain
	MidiAddress   string
	MarketAddress string
}

type ethSubscriber struct {
	client  adapter.EthClient
	chainID domain.Chain
	midi    common.Address
	market  common.Address
}

// NewSubscriber creates a new event subscriber
func NewSubscriber(cfg SubscriberConfig, client adapter.EthClient) Subscriber {
	return &ethSubscriber{
		client:  client,
		chainID: cfg.ChainID,
		midi:    common.HexToAddress(cfg.MidiAddress),
		market:  common.HexToAddress(cfg.MarketAddress),
	}
}

func (s *ethSubscriber) SubscribeTransfers(ctx context.Context, fromBlock uint64, handler TransferHandler) error {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{s.midi},
		Topics:    [][]common.Hash{{transferSingleEventSignature}},
	}

	return s.subscribe(ctx, "transfers", query, func(vLog types.Log) error {
		event, err := ParseTransferSingle(vLog)
		if err != nil {
			return err
		}
		return handler(ctx, event)
	})
}

func (s *ethSubscriber) SubscribeListings(ctx context.Context, fromBlock uint64, handler ListingHandler) error {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{s.market},
		Topics:    [][]common.Hash{{listingCreatedEventSignature}},
	}

	return s.subscribe(ctx, "listings", query, func(vLog types.Log) error {
		event, err := ParseListingCreated(vLog)
		if err != nil {
			return err
		}
		return handler(ctx, event)
	})
}

func (s *ethSubscriber) subscribe(ctx context.Context, stream string, query ethereum.FilterQuery, handle func(types.Log) error) error {
	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSubscriptionFailed, stream, err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from event logs", zap.String("stream", stream))
		sub.Unsubscribe()
		logger.InfoCtx(ctx, "Unsubscribed from event logs", zap.String("stream", stream))
	}()

	logger.InfoCtx(ctx, "Subscribed to event logs",
		zap.String("stream", stream),
		zap.String("chainID", string(s.chainID)),
		zap.Uint64("fromBlock", query.FromBlock.Uint64()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			if err == nil {
				err = errors.New("subscription closed")
			}
			return fmt.Errorf("%w: %s: %w", domain.ErrSubscriptionFailed, stream, err)
		case vLog := <-logs:
			if vLog.Removed {
				logger.WarnCtx(ctx, "Ignoring removed log",
					zap.String("stream", stream),
					zap.String("txHash", vLog.TxHash.Hex()))
				continue
			}

			if err := handle(vLog); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, domain.ErrInvalidEvent) {
					logger.WarnCtx(ctx, "Error parsing log", zap.Error(err), zap.String("stream", stream))
					continue
				}
				logger.ErrorCtx(ctx, err, zap.String("message", "Error handling event"), zap.String("stream", stream))
			}
		}
	}
}

func (s *ethSubscriber) LatestBlock(ctx context.Context) (uint64, error) {
	number, err := s.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return number, nil
}

func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
