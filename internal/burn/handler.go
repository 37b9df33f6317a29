package burn

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/messaging"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

// Result describes what a burn did to the mirror
type Result struct {
	TokenID     uint64 `json:"token_id"`
	TotalSupply uint64 `json:"total_supply"`
	Deleted     bool   `json:"deleted"`
}

// Handler reconciles the mirror after a transfer to the zero address
//
//go:generate mockgen -source=handler.go -destination=../mocks/burn_handler.go -package=mocks -mock_names=Handler=MockBurnHandler
type Handler interface {
	// HandleBurn removes the token once its supply reaches zero,
	// otherwise records the remaining supply
	HandleBurn(ctx context.Context, tokenID uint64) (*Result, error)
}

type handler struct {
	contract  ethereum.MidiContract
	store     store.Store
	publisher messaging.Publisher
}

func NewHandler(contract ethereum.MidiContract, store store.Store, publisher messaging.Publisher) Handler {
	return &handler{
		contract:  contract,
		store:     store,
		publisher: publisher,
	}
}

func (h *handler) HandleBurn(ctx context.Context, tokenID uint64) (*Result, error) {
	supply, err := h.contract.TotalSupply(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read total supply of token %d: %w", tokenID, err)
	}

	result := &Result{TokenID: tokenID, TotalSupply: supply}

	if supply > 0 {
		if err := h.store.UpdateTokenSupply(ctx, tokenID, supply); err != nil {
			return nil, fmt.Errorf("failed to update supply of token %d: %w", tokenID, err)
		}
		logger.InfoCtx(ctx, "Token partially burned",
			zap.Uint64("tokenID", tokenID),
			zap.Uint64("totalSupply", supply))
		return result, nil
	}

	deleted, err := h.store.DeleteToken(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete token %d: %w", tokenID, err)
	}
	result.Deleted = deleted

	if !deleted {
		logger.WarnCtx(ctx, "Burned token was not indexed", zap.Uint64("tokenID", tokenID))
		return result, nil
	}

	logger.InfoCtx(ctx, "Token burned", zap.Uint64("tokenID", tokenID))

	if err := h.publisher.Publish(ctx, domain.Notification{
		Type:    domain.NotificationMIDIBurned,
		TokenID: tokenID,
	}); err != nil {
		logger.WarnCtx(ctx, "Failed to publish notification", zap.Uint64("tokenID", tokenID), zap.Error(err))
	}

	return result, nil
}
