package indexer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonobay/sonobay-indexer/internal/indexer"
	"github.com/sonobay/sonobay-indexer/internal/mocks"
	"github.com/sonobay/sonobay-indexer/internal/store/schema"
)

func TestDeviceResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(*mocks.MockStore)
		expectedID int64
		expectErr  bool
	}{
		{
			name: "existing device",
			setupMocks: func(s *mocks.MockStore) {
				s.EXPECT().GetDeviceByKey(ctx, "minilogue", "Korg").Return(&schema.Device{ID: 3}, nil)
			},
			expectedID: 3,
		},
		{
			name: "new device is upserted",
			setupMocks: func(s *mocks.MockStore) {
				s.EXPECT().GetDeviceByKey(ctx, "minilogue", "Korg").Return(nil, nil)
				s.EXPECT().UpsertDevice(ctx, "minilogue", "Korg").Return(&schema.Device{ID: 4}, nil)
			},
			expectedID: 4,
		},
		{
			name: "lookup failure falls through to upsert",
			setupMocks: func(s *mocks.MockStore) {
				s.EXPECT().GetDeviceByKey(ctx, "minilogue", "Korg").Return(nil, errors.New("timeout"))
				s.EXPECT().UpsertDevice(ctx, "minilogue", "Korg").Return(&schema.Device{ID: 5}, nil)
			},
			expectedID: 5,
		},
		{
			name: "upsert failure",
			setupMocks: func(s *mocks.MockStore) {
				s.EXPECT().GetDeviceByKey(ctx, "minilogue", "Korg").Return(nil, nil)
				s.EXPECT().UpsertDevice(ctx, "minilogue", "Korg").Return(nil, errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			s := mocks.NewMockStore(ctrl)
			tt.setupMocks(s)

			id, err := indexer.NewDeviceResolver(s).Resolve(ctx, "minilogue", "Korg")
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}
