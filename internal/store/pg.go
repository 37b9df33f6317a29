package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 1 hour
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = time.Hour
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// CreateToken inserts the token row and its device links in a single transaction
func (s *pgStore) CreateToken(ctx context.Context, input CreateTokenInput) error {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		midi := schema.MIDI{
			ID:           int64(input.ID), //nolint:gosec,G115
			Metadata:     datatypes.JSON(input.Metadata),
			MetadataHash: input.MetadataHash,
			Tags:         datatypes.NewJSONSlice(tags),
			CreatedBy:    input.CreatedBy,
		}
		if err := tx.Create(&midi).Error; err != nil {
			return fmt.Errorf("failed to create midi: %w", translateError(err))
		}

		if len(input.DeviceIDs) == 0 {
			return nil
		}

		links := make([]schema.MIDIDevice, 0, len(input.DeviceIDs))
		for _, deviceID := range input.DeviceIDs {
			links = append(links, schema.MIDIDevice{MIDI: midi.ID, Device: deviceID})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to create midi devices: %w", translateError(err))
		}

		return nil
	})
}

// GetTokenByID retrieves a token by its on-chain id
func (s *pgStore) GetTokenByID(ctx context.Context, id uint64) (*schema.MIDI, error) {
	var midi schema.MIDI
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&midi).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get midi: %w", err)
	}
	return &midi, nil
}

// GetTokenIDs retrieves every stored token id in ascending order
func (s *pgStore) GetTokenIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&schema.MIDI{}).Order("id ASC").Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get midi ids: %w", err)
	}
	return ids, nil
}

// GetDevicesByTokenID retrieves the devices linked to a token in link order
func (s *pgStore) GetDevicesByTokenID(ctx context.Context, id uint64) ([]schema.Device, error) {
	var devices []schema.Device
	err := s.db.WithContext(ctx).
		Joins("JOIN midi_devices ON midi_devices.device = devices.id").
		Where("midi_devices.midi = ?", id).
		Order("midi_devices.created_at ASC, devices.id ASC").
		Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get devices for midi: %w", err)
	}
	return devices, nil
}

// DeleteToken deletes the device links of a token then the token
func (s *pgStore) DeleteToken(ctx context.Context, id uint64) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("midi = ?", id).Delete(&schema.MIDIDevice{}).Error; err != nil {
			return fmt.Errorf("failed to delete midi devices: %w", err)
		}

		res := tx.Where("id = ?", id).Delete(&schema.MIDI{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete midi: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// UpdateTokenSupply records the last observed on-chain supply of a token
func (s *pgStore) UpdateTokenSupply(ctx context.Context, id uint64, supply uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.MIDI{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_supply": int64(supply), //nolint:gosec,G115
			"updated_at":   gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update midi supply: %w", err)
	}
	return nil
}

// GetDeviceByKey retrieves a device by its normalized key
func (s *pgStore) GetDeviceByKey(ctx context.Context, name, manufacturer string) (*schema.Device, error) {
	nameKey, manufacturerKey := domain.NormalizeDeviceKey(name, manufacturer)

	var device schema.Device
	err := s.db.WithContext(ctx).
		Where("name_key = ? AND manufacturer_key = ?", nameKey, manufacturerKey).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return &device, nil
}

// UpsertDevice inserts a device or returns the existing row with the same normalized key.
// The no-op update on conflict makes RETURNING yield the existing row.
func (s *pgStore) UpsertDevice(ctx context.Context, name, manufacturer string) (*schema.Device, error) {
	nameKey, manufacturerKey := domain.NormalizeDeviceKey(name, manufacturer)
	if nameKey == "" {
		return nil, errors.New("device name is required")
	}

	device := schema.Device{
		Name:            strings.TrimSpace(name),
		Manufacturer:    strings.TrimSpace(manufacturer),
		NameKey:         nameKey,
		ManufacturerKey: manufacturerKey,
	}

	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "name_key"}, {Name: "manufacturer_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"name_key"}),
			},
			clause.Returning{},
		).
		Create(&device).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device: %w", err)
	}
	if device.ID == 0 {
		return nil, errors.New("failed to upsert device: no row returned")
	}

	return &device, nil
}

// CreateListing appends a listing row, ignoring a redelivered log
func (s *pgStore) CreateListing(ctx context.Context, input CreateListingInput) (bool, error) {
	listing := schema.Listing{
		ListingAddress: input.ListingAddress,
		TokenID:        int64(input.TokenID), //nolint:gosec,G115
		Amount:         input.Amount,
		Price:          input.Price,
		SellerAddress:  input.SellerAddress,
		TxHash:         input.TxHash,
		LogIndex:       int(input.LogIndex),      //nolint:gosec,G115
		BlockNumber:    int64(input.BlockNumber), //nolint:gosec,G115
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "log_index"}},
			DoNothing: true,
		}).
		Create(&listing)
	if res.Error != nil {
		return false, fmt.Errorf("failed to create listing: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// GetListingsByTokenID retrieves the listings of a token, oldest first
func (s *pgStore) GetListingsByTokenID(ctx context.Context, id uint64) ([]schema.Listing, error) {
	var listings []schema.Listing
	err := s.db.WithContext(ctx).Where("token_id = ?", id).Order("id ASC").Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}
	return listings, nil
}

// CreateQueueEntry inserts a retry entry with one attempt
func (s *pgStore) CreateQueueEntry(ctx context.Context, id uint64, errMsg string, operator string) error {
	// The savepoint keeps an enclosing transaction usable after a duplicate insert
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := schema.Queue{
			ID:       int64(id), //nolint:gosec,G115
			Attempts: 1,
			Error:    errMsg,
			Operator: operator,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create queue entry: %w", translateError(err))
		}
		return nil
	})
}

// DeleteQueueEntry removes a retry entry
func (s *pgStore) DeleteQueueEntry(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Queue{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	return nil
}

// UpdateQueueEntry overwrites the attempt count and last error of a retry entry
func (s *pgStore) UpdateQueueEntry(ctx context.Context, id uint64, attempts int, errMsg string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Queue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   attempts,
			"error":      errMsg,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update queue entry: %w", err)
	}
	return nil
}

// GetQueueEntry retrieves a retry entry
func (s *pgStore) GetQueueEntry(ctx context.Context, id uint64) (*schema.Queue, error) {
	var entry schema.Queue
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}
	return &entry, nil
}

// GetQueueEntries retrieves retry entries with attempts strictly below the ceiling
func (s *pgStore) GetQueueEntries(ctx context.Context, attemptCeiling int) ([]schema.Queue, error) {
	var entries []schema.Queue
	err := s.db.WithContext(ctx).
		Where("attempts < ?", attemptCeiling).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entries: %w", err)
	}
	return entries, nil
}

// GetDeadLetterEntries retrieves retry entries with attempts at or above the ceiling
func (s *pgStore) GetDeadLetterEntries(ctx context.Context, attemptCeiling int) ([]schema.Queue, error) {
	var entries []schema.Queue
	err := s.db.WithContext(ctx).
		Where("attempts >= ?", attemptCeiling).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get dead letter entries: %w", err)
	}
	return entries, nil
}

// GetQueuedTokenIDs retrieves the ids of every retry entry
func (s *pgStore) GetQueuedTokenIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&schema.Queue{}).Order("id ASC").Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get queued ids: %w", err)
	}
	return ids, nil
}
