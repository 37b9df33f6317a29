package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/store"
)

// DeviceResolver maps a declared (name, manufacturer) pair to a device row id
//
//go:generate mockgen -source=devices.go -destination=../mocks/device_resolver.go -package=mocks -mock_names=DeviceResolver=MockDeviceResolver
type DeviceResolver interface {
	// Resolve returns the id of the matching device, creating it when absent
	Resolve(ctx context.Context, name, manufacturer string) (int64, error)
}

type deviceResolver struct {
	store store.Store
}

func NewDeviceResolver(store store.Store) DeviceResolver {
	return &deviceResolver{store: store}
}

func (r *deviceResolver) Resolve(ctx context.Context, name, manufacturer string) (int64, error) {
	device, err := r.store.GetDeviceByKey(ctx, name, manufacturer)
	if err != nil {
		// lookup errors fall through to the upsert
		logger.WarnCtx(ctx, "Failed to look up device",
			zap.String("name", name),
			zap.String("manufacturer", manufacturer),
			zap.Error(err))
	}
	if device != nil {
		return device.ID, nil
	}

	device, err = r.store.UpsertDevice(ctx, name, manufacturer)
	if err != nil {
		return 0, fmt.Errorf("failed to create device %s: %s: %w", manufacturer, name, err)
	}

	logger.InfoCtx(ctx, "Resolved device",
		zap.Int64("deviceID", device.ID),
		zap.String("name", name),
		zap.String("manufacturer", manufacturer))

	return device.ID, nil
}
