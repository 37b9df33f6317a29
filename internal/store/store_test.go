package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonobay/sonobay-indexer/internal/domain"
)

const testOperator = "0x1234567890123456789012345678901234567890"

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestToken(id uint64, deviceIDs ...int64) CreateTokenInput {
	hash := "deadbeef"
	return CreateTokenInput{
		ID:           id,
		Metadata:     []byte(`{"name":"pack","description":"","image":"","properties":{"tags":["lofi"],"entries":[]}}`),
		MetadataHash: &hash,
		Tags:         []string{"LOFI"},
		CreatedBy:    testOperator,
		DeviceIDs:    deviceIDs,
	}
}

func mustUpsertDevice(t *testing.T, store Store, name, manufacturer string) int64 {
	device, err := store.UpsertDevice(context.Background(), name, manufacturer)
	require.NoError(t, err)
	require.NotNil(t, device)
	return device.ID
}

// =============================================================================
// Tokens
// =============================================================================

func testCreateToken(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates token and device links", func(t *testing.T) {
		sp404 := mustUpsertDevice(t, store, "SP-404", "Roland")
		op1 := mustUpsertDevice(t, store, "OP-1", "Teenage Engineering")

		require.NoError(t, store.CreateToken(ctx, buildTestToken(42, sp404, op1)))

		token, err := store.GetTokenByID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, int64(42), token.ID)
		assert.Equal(t, testOperator, token.CreatedBy)
		assert.Equal(t, []string{"LOFI"}, []string(token.Tags))
		require.NotNil(t, token.MetadataHash)
		assert.Equal(t, "deadbeef", *token.MetadataHash)
		assert.Nil(t, token.TotalSupply)

		devices, err := store.GetDevicesByTokenID(ctx, 42)
		require.NoError(t, err)
		require.Len(t, devices, 2)
		ids := []int64{devices[0].ID, devices[1].ID}
		assert.ElementsMatch(t, []int64{sp404, op1}, ids)
	})

	t.Run("duplicate id is rejected and leaves the row unchanged", func(t *testing.T) {
		require.NoError(t, store.CreateToken(ctx, buildTestToken(43)))

		dup := buildTestToken(43)
		dup.CreatedBy = "0x9999999999999999999999999999999999999999"
		err := store.CreateToken(ctx, dup)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrDuplicate))

		token, err := store.GetTokenByID(ctx, 43)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, testOperator, token.CreatedBy)
	})

	t.Run("unknown device rolls back the token", func(t *testing.T) {
		err := store.CreateToken(ctx, buildTestToken(44, 999999))
		require.Error(t, err)

		token, err := store.GetTokenByID(ctx, 44)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("missing token returns nil", func(t *testing.T) {
		token, err := store.GetTokenByID(ctx, 123456)
		require.NoError(t, err)
		assert.Nil(t, token)
	})
}

func testGetTokenIDs(t *testing.T, store Store) {
	ctx := context.Background()

	for _, id := range []uint64{3, 1, 2} {
		require.NoError(t, store.CreateToken(ctx, buildTestToken(id)))
	}

	ids, err := store.GetTokenIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func testDeleteToken(t *testing.T, store Store) {
	ctx := context.Background()

	device := mustUpsertDevice(t, store, "MPC One", "Akai")
	require.NoError(t, store.CreateToken(ctx, buildTestToken(7, device)))

	deleted, err := store.DeleteToken(ctx, 7)
	require.NoError(t, err)
	assert.True(t, deleted)

	token, err := store.GetTokenByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, token)

	devices, err := store.GetDevicesByTokenID(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, devices)

	// the device itself survives
	existing, err := store.GetDeviceByKey(ctx, "mpc one", "AKAI")
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, device, existing.ID)

	// deleting again is a no-op
	deleted, err = store.DeleteToken(ctx, 7)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testUpdateTokenSupply(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.CreateToken(ctx, buildTestToken(8)))
	require.NoError(t, store.UpdateTokenSupply(ctx, 8, 25))

	token, err := store.GetTokenByID(ctx, 8)
	require.NoError(t, err)
	require.NotNil(t, token.TotalSupply)
	assert.Equal(t, int64(25), *token.TotalSupply)

	// unknown ids are ignored
	assert.NoError(t, store.UpdateTokenSupply(ctx, 9999, 1))
}

// =============================================================================
// Devices
// =============================================================================

func testUpsertDevice(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("same normalized key returns the existing row", func(t *testing.T) {
		first, err := store.UpsertDevice(ctx, "SP-404", "Roland")
		require.NoError(t, err)

		second, err := store.UpsertDevice(ctx, "  sp-404 ", "ROLAND")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "SP-404", second.Name)
		assert.Equal(t, "Roland", second.Manufacturer)
	})

	t.Run("different manufacturer is a different device", func(t *testing.T) {
		a, err := store.UpsertDevice(ctx, "Digitakt", "Elektron")
		require.NoError(t, err)
		b, err := store.UpsertDevice(ctx, "Digitakt", "")
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := store.UpsertDevice(ctx, "  ", "Roland")
		assert.Error(t, err)
	})

	t.Run("lookup by key", func(t *testing.T) {
		device, err := store.GetDeviceByKey(ctx, "sp-404", "roland")
		require.NoError(t, err)
		require.NotNil(t, device)
		assert.Equal(t, "sp-404", device.NameKey)

		missing, err := store.GetDeviceByKey(ctx, "TR-808", "Roland")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

// =============================================================================
// Listings
// =============================================================================

func testCreateListing(t *testing.T, store Store) {
	ctx := context.Background()

	input := CreateListingInput{
		ListingAddress: "0x3333333333333333333333333333333333333333",
		TokenID:        42,
		Amount:         "3",
		Price:          "1000000000000000000000000",
		SellerAddress:  testOperator,
		TxHash:         "0xabc",
		LogIndex:       2,
		BlockNumber:    100,
	}

	inserted, err := store.CreateListing(ctx, input)
	require.NoError(t, err)
	assert.True(t, inserted)

	// redelivered log
	inserted, err = store.CreateListing(ctx, input)
	require.NoError(t, err)
	assert.False(t, inserted)

	input.LogIndex = 3
	inserted, err = store.CreateListing(ctx, input)
	require.NoError(t, err)
	assert.True(t, inserted)

	listings, err := store.GetListingsByTokenID(ctx, 42)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "1000000000000000000000000", listings[0].Price)
	assert.Equal(t, "3", listings[0].Amount)
	assert.Equal(t, testOperator, listings[0].SellerAddress)
}

// =============================================================================
// Queue
// =============================================================================

func testQueue(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create starts at one attempt", func(t *testing.T) {
		require.NoError(t, store.CreateQueueEntry(ctx, 42, "MetadataUnavailable", testOperator))

		entry, err := store.GetQueueEntry(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, 1, entry.Attempts)
		assert.Equal(t, "MetadataUnavailable", entry.Error)
		assert.Equal(t, testOperator, entry.Operator)
	})

	t.Run("duplicate create keeps the original entry", func(t *testing.T) {
		err := store.CreateQueueEntry(ctx, 42, "other", "0x9999999999999999999999999999999999999999")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrDuplicate))

		entry, err := store.GetQueueEntry(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, "MetadataUnavailable", entry.Error)
		assert.Equal(t, testOperator, entry.Operator)
	})

	t.Run("fetch excludes entries at the ceiling", func(t *testing.T) {
		require.NoError(t, store.CreateQueueEntry(ctx, 7, "err", testOperator))
		require.NoError(t, store.UpdateQueueEntry(ctx, 7, 9, "still failing"))
		require.NoError(t, store.CreateQueueEntry(ctx, 8, "err", testOperator))
		require.NoError(t, store.UpdateQueueEntry(ctx, 8, 10, "dead"))

		entries, err := store.GetQueueEntries(ctx, 10)
		require.NoError(t, err)
		ids := make([]int64, 0, len(entries))
		for _, e := range entries {
			assert.Less(t, e.Attempts, 10)
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []int64{7, 42}, ids)

		dead, err := store.GetDeadLetterEntries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, dead, 1)
		assert.Equal(t, int64(8), dead[0].ID)
		assert.Equal(t, "dead", dead[0].Error)

		queued, err := store.GetQueuedTokenIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint64{7, 8, 42}, queued)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		require.NoError(t, store.DeleteQueueEntry(ctx, 42))

		entry, err := store.GetQueueEntry(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})
}

// =============================================================================
// Cursors
// =============================================================================

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()

	cursor, err := store.GetBlockCursor(ctx, "transfers")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	require.NoError(t, store.SetBlockCursor(ctx, "transfers", 100))
	require.NoError(t, store.SetBlockCursor(ctx, "transfers", 150))

	cursor, err = store.GetBlockCursor(ctx, "transfers")
	require.NoError(t, err)
	assert.Equal(t, uint64(150), cursor)

	// cursor never moves backwards
	require.NoError(t, store.SetBlockCursor(ctx, "transfers", 120))
	cursor, err = store.GetBlockCursor(ctx, "transfers")
	require.NoError(t, err)
	assert.Equal(t, uint64(150), cursor)

	// streams are independent
	cursor, err = store.GetBlockCursor(ctx, "listings")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)
}

func testPing(t *testing.T, store Store) {
	assert.NoError(t, store.Ping(context.Background()))
}

// RunStoreTests runs every store test against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateToken", testCreateToken},
		{"GetTokenIDs", testGetTokenIDs},
		{"DeleteToken", testDeleteToken},
		{"UpdateTokenSupply", testUpdateTokenSupply},
		{"UpsertDevice", testUpsertDevice},
		{"CreateListing", testCreateListing},
		{"Queue", testQueue},
		{"BlockCursor", testBlockCursor},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
