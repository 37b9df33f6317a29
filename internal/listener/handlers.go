package listener

import (
	"context"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

// handleTransfer routes a TransferSingle event by its direction
func (l *listener) handleTransfer(ctx context.Context, event *domain.TransferEvent) {
	logger.InfoCtx(ctx, "on.TransferSingle",
		zap.String("operator", event.Operator),
		zap.String("from", event.From),
		zap.String("to", event.To),
		zap.Uint64("tokenID", event.TokenID),
		zap.String("txHash", event.TxHash))

	switch event.Type() {
	case domain.EventTypeMint:
		l.handleMint(ctx, event)
	case domain.EventTypeBurn:
		if _, err := l.burn.HandleBurn(ctx, event.TokenID); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "error handling burn"), zap.Uint64("tokenID", event.TokenID))
		}
	default:
		// secondary transfers do not change the mirror
	}
}

func (l *listener) handleMint(ctx context.Context, event *domain.TransferEvent) {
	err := l.indexer.IndexByID(ctx, event.TokenID, event.Operator)
	switch {
	case err == nil:
		// a burn handled while the token was being indexed found no row to delete
		l.refreshSupply(ctx, event.TokenID)
		return
	case domain.IsInFlight(err):
		logger.DebugCtx(ctx, "Token is being indexed elsewhere", zap.Uint64("tokenID", event.TokenID))
		return
	case domain.IsDuplicate(err):
		// another copy minted for an already indexed id
		l.refreshSupply(ctx, event.TokenID)
		return
	case ctx.Err() != nil:
		return
	}

	logger.WarnCtx(ctx, "Failed indexing minted token",
		zap.Uint64("tokenID", event.TokenID),
		zap.Error(err))
	l.queue.Enqueue(ctx, event.TokenID, err.Error(), event.Operator)
}

// refreshSupply records the current supply of a stored token and removes it
// when the supply is already exhausted
func (l *listener) refreshSupply(ctx context.Context, tokenID uint64) {
	supply, err := l.contract.TotalSupply(ctx, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read total supply", zap.Uint64("tokenID", tokenID), zap.Error(err))
		return
	}
	if supply == 0 {
		if _, err := l.burn.HandleBurn(ctx, tokenID); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "error handling burn"), zap.Uint64("tokenID", tokenID))
		}
		return
	}
	if err := l.store.UpdateTokenSupply(ctx, tokenID, supply); err != nil {
		logger.WarnCtx(ctx, "Failed to update total supply", zap.Uint64("tokenID", tokenID), zap.Error(err))
		return
	}
	logger.InfoCtx(ctx, "Refreshed token supply",
		zap.Uint64("tokenID", tokenID),
		zap.Uint64("totalSupply", supply))
}

func (l *listener) handleListing(ctx context.Context, event *domain.ListingEvent) {
	logger.InfoCtx(ctx, "on.ListingCreated",
		zap.Uint64("tokenID", event.TokenID),
		zap.String("listingAddress", event.ListingAddress),
		zap.Stringer("amount", event.Amount),
		zap.Stringer("price", event.Price),
		zap.String("lister", event.Lister))

	inserted, err := l.store.CreateListing(ctx, store.CreateListingInput{
		ListingAddress: event.ListingAddress,
		TokenID:        event.TokenID,
		Amount:         event.Amount.String(),
		Price:          event.Price.String(),
		SellerAddress:  event.Lister,
		TxHash:         event.TxHash,
		LogIndex:       event.LogIndex,
		BlockNumber:    event.BlockNumber,
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "error creating listing"), zap.Uint64("tokenID", event.TokenID))
		return
	}
	if !inserted {
		logger.DebugCtx(ctx, "Listing already stored", zap.String("txHash", event.TxHash), zap.Uint("logIndex", event.LogIndex))
		return
	}

	if err := l.publisher.Publish(ctx, domain.Notification{
		Type:           domain.NotificationListingCreated,
		TokenID:        event.TokenID,
		ListingAddress: event.ListingAddress,
		Price:          event.Price.String(),
		TxHash:         event.TxHash,
		LogIndex:       event.LogIndex,
	}); err != nil {
		logger.WarnCtx(ctx, "Failed to publish notification", zap.Uint64("tokenID", event.TokenID), zap.Error(err))
	}
}
