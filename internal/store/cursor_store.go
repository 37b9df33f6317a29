package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

func blockCursorKey(stream string) string {
	return fmt.Sprintf("block_cursor:%s", stream)
}

// GetBlockCursor retrieves the last processed block number for an event stream
func (s *pgStore) GetBlockCursor(ctx context.Context, stream string) (uint64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", blockCursorKey(stream)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last processed block number for an event stream.
// The cursor never moves backwards.
func (s *pgStore) SetBlockCursor(ctx context.Context, stream string, blockNumber uint64) error {
	value := strconv.FormatUint(blockNumber, 10)

	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO key_value_store (key, value, created_at, updated_at)
		VALUES (?, ?, now(), now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
		WHERE key_value_store.value::numeric < EXCLUDED.value::numeric`,
		blockCursorKey(stream), value).Error
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}
