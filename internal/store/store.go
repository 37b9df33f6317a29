package store

import (
	"context"

	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

// CreateTokenInput holds the token row and the device links written together
type CreateTokenInput struct {
	ID           uint64
	Metadata     []byte
	MetadataHash *string
	Tags         []string
	CreatedBy    string
	// DeviceIDs are linked in order; callers truncate to the per-token cap
	DeviceIDs []int64
}

// CreateListingInput holds a listing row
type CreateListingInput struct {
	ListingAddress string
	TokenID        uint64
	Amount         string
	Price          string
	SellerAddress  string
	TxHash         string
	LogIndex       uint
	BlockNumber    uint64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Ping checks the database connection
	Ping(ctx context.Context) error

	// CreateToken inserts the token row and its device links in a single transaction.
	// A token id that already exists fails with an error wrapping domain.ErrDuplicate.
	CreateToken(ctx context.Context, input CreateTokenInput) error
	// GetTokenByID retrieves a token by its on-chain id, nil when absent
	GetTokenByID(ctx context.Context, id uint64) (*schema.MIDI, error)
	// GetTokenIDs retrieves every stored token id in ascending order
	GetTokenIDs(ctx context.Context) ([]uint64, error)
	// GetDevicesByTokenID retrieves the devices linked to a token
	GetDevicesByTokenID(ctx context.Context, id uint64) ([]schema.Device, error)
	// DeleteToken deletes the device links of a token then the token, in a single transaction.
	// It reports whether a token row was deleted.
	DeleteToken(ctx context.Context, id uint64) (bool, error)
	// UpdateTokenSupply records the last observed on-chain supply of a token
	UpdateTokenSupply(ctx context.Context, id uint64, supply uint64) error

	// GetDeviceByKey retrieves a device by its normalized (name, manufacturer) key, nil when absent
	GetDeviceByKey(ctx context.Context, name, manufacturer string) (*schema.Device, error)
	// UpsertDevice inserts a device or returns the existing row with the same normalized key
	UpsertDevice(ctx context.Context, name, manufacturer string) (*schema.Device, error)

	// CreateListing appends a listing row. It reports false when the same log was already stored.
	CreateListing(ctx context.Context, input CreateListingInput) (bool, error)
	// GetListingsByTokenID retrieves the listings of a token, oldest first
	GetListingsByTokenID(ctx context.Context, id uint64) ([]schema.Listing, error)

	// CreateQueueEntry inserts a retry entry with one attempt.
	// An id that is already queued fails with an error wrapping domain.ErrDuplicate.
	CreateQueueEntry(ctx context.Context, id uint64, errMsg string, operator string) error
	// DeleteQueueEntry removes a retry entry
	DeleteQueueEntry(ctx context.Context, id uint64) error
	// UpdateQueueEntry overwrites the attempt count and last error of a retry entry
	UpdateQueueEntry(ctx context.Context, id uint64, attempts int, errMsg string) error
	// GetQueueEntry retrieves a retry entry, nil when absent
	GetQueueEntry(ctx context.Context, id uint64) (*schema.Queue, error)
	// GetQueueEntries retrieves retry entries with attempts strictly below the ceiling
	GetQueueEntries(ctx context.Context, attemptCeiling int) ([]schema.Queue, error)
	// GetDeadLetterEntries retrieves retry entries with attempts at or above the ceiling
	GetDeadLetterEntries(ctx context.Context, attemptCeiling int) ([]schema.Queue, error)
	// GetQueuedTokenIDs retrieves the ids of every retry entry regardless of attempts
	GetQueuedTokenIDs(ctx context.Context) ([]uint64, error)

	// GetBlockCursor retrieves the last processed block number for an event stream
	GetBlockCursor(ctx context.Context, stream string) (uint64, error)
	// SetBlockCursor stores the last processed block number for an event stream
	SetBlockCursor(ctx context.Context, stream string, blockNumber uint64) error
}
