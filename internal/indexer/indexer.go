package indexer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/messaging"
	"github.com/sonobay/sonobay-indexer/internal/metadata"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

// Indexer turns a minted token id into a stored token with its device links
//
//go:generate mockgen -source=indexer.go -destination=../mocks/indexer.go -package=mocks -mock_names=Indexer=MockIndexer
type Indexer interface {
	// IndexByID fetches, validates and stores the token. Failures are *domain.IndexError.
	IndexByID(ctx context.Context, tokenID uint64, operator string) error
}

type indexer struct {
	fetcher   metadata.Fetcher
	devices   DeviceResolver
	store     store.Store
	jcs       adapter.JCS
	publisher messaging.Publisher
	inFlight  *inFlight
}

func NewIndexer(fetcher metadata.Fetcher, devices DeviceResolver, store store.Store, jcs adapter.JCS, publisher messaging.Publisher) Indexer {
	return &indexer{
		fetcher:   fetcher,
		devices:   devices,
		store:     store,
		jcs:       jcs,
		publisher: publisher,
		inFlight:  newInFlight(),
	}
}

func (i *indexer) IndexByID(ctx context.Context, tokenID uint64, operator string) error {
	if !i.inFlight.acquire(tokenID) {
		return domain.NewIndexError(domain.ErrKindInFlight, tokenID, "indexing already in progress", nil)
	}
	defer i.inFlight.release(tokenID)

	md, err := i.fetcher.Fetch(ctx, tokenID)
	if err != nil || md == nil {
		return domain.NewIndexError(domain.ErrKindMetadataUnavailable, tokenID, "failed fetching metadata", err)
	}

	if !md.HasDevices() {
		return domain.NewIndexError(domain.ErrKindNoDeviceProperty, tokenID, "no metadata.properties.devices property", nil)
	}

	deviceIDs, err := i.resolveDevices(ctx, md.Properties.Devices)
	if err != nil {
		return domain.NewIndexError(domain.ErrKindDeviceCreationFailed, tokenID, "creating device failed", err)
	}

	var metadataHash *string
	if hash, err := i.jcs.Hash(md.Raw); err != nil {
		logger.WarnCtx(ctx, "Failed to hash metadata", zap.Uint64("tokenID", tokenID), zap.Error(err))
	} else {
		metadataHash = &hash
	}

	err = i.store.CreateToken(ctx, store.CreateTokenInput{
		ID:           tokenID,
		Metadata:     md.Raw,
		MetadataHash: metadataHash,
		Tags:         md.DerivedTags(),
		CreatedBy:    operator,
		DeviceIDs:    deviceIDs,
	})
	if err != nil {
		detail := "failed creating midi"
		if errors.Is(err, domain.ErrDuplicate) {
			detail = "midi already indexed"
		}
		return domain.NewIndexError(domain.ErrKindPersistenceError, tokenID, detail, err)
	}

	logger.InfoCtx(ctx, "Indexed midi",
		zap.Uint64("tokenID", tokenID),
		zap.String("operator", operator),
		zap.Int("devices", len(deviceIDs)))

	if err := i.publisher.Publish(ctx, domain.Notification{
		Type:     domain.NotificationMIDIIndexed,
		TokenID:  tokenID,
		Operator: operator,
	}); err != nil {
		logger.WarnCtx(ctx, "Failed to publish notification", zap.Uint64("tokenID", tokenID), zap.Error(err))
	}

	return nil
}

// resolveDevices resolves every declared device and returns the first
// MAX_DEVICES_PER_TOKEN distinct ids in declaration order
func (i *indexer) resolveDevices(ctx context.Context, refs []domain.DeviceRef) ([]int64, error) {
	seen := make(map[int64]struct{}, len(refs))
	ids := make([]int64, 0, domain.MAX_DEVICES_PER_TOKEN)

	for _, ref := range refs {
		id, err := i.devices.Resolve(ctx, ref.Name, ref.Manufacturer)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", ref.Manufacturer, ref.Name, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if len(ids) < domain.MAX_DEVICES_PER_TOKEN {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
