package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/uri"
)

func TestResolver_Candidates(t *testing.T) {
	config := &uri.Config{
		IPFSGateways:    []string{"https://nftstorage.link/", "https://ipfs.io"},
		ArweaveGateways: []string{"https://arweave.net"},
	}

	tests := []struct {
		name        string
		uri         string
		config      *uri.Config
		expected    []string
		expectedErr string
	}{
		{
			name:     "regular HTTPS URL",
			uri:      "https://example.com/metadata.json",
			config:   config,
			expected: []string{"https://example.com/metadata.json"},
		},
		{
			name:   "IPFS URI expands per gateway",
			uri:    "ipfs://bafybeigdyrzt/1.json",
			config: config,
			expected: []string{
				"https://nftstorage.link/ipfs/bafybeigdyrzt/1.json",
				"https://ipfs.io/ipfs/bafybeigdyrzt/1.json",
			},
		},
		{
			name:     "IPFS URI with ipfs path prefix",
			uri:      "ipfs://ipfs/QmHash",
			config:   &uri.Config{IPFSGateways: []string{"https://ipfs.io"}},
			expected: []string{"https://ipfs.io/ipfs/QmHash"},
		},
		{
			name:   "gateway URL is tried first then rerouted",
			uri:    "https://gateway.pinata.cloud/ipfs/QmHash",
			config: config,
			expected: []string{
				"https://gateway.pinata.cloud/ipfs/QmHash",
				"https://nftstorage.link/ipfs/QmHash",
				"https://ipfs.io/ipfs/QmHash",
			},
		},
		{
			name:     "default gateway when none configured",
			uri:      "ipfs://QmHash",
			config:   nil,
			expected: []string{domain.DEFAULT_IPFS_GATEWAY + "/ipfs/QmHash"},
		},
		{
			name:     "Arweave URI",
			uri:      "ar://tx123",
			config:   config,
			expected: []string{"https://arweave.net/tx123"},
		},
		{
			name:        "Arweave without gateways",
			uri:         "ar://tx123",
			config:      &uri.Config{},
			expectedErr: "no Arweave gateways configured",
		},
		{
			name:        "empty IPFS path",
			uri:         "ipfs://",
			config:      config,
			expectedErr: "empty content path",
		},
		{
			name:        "unsupported scheme",
			uri:         "ftp://example.com/file",
			config:      config,
			expectedErr: "unsupported uri scheme",
		},
		{
			name:        "empty",
			uri:         "  ",
			config:      config,
			expectedErr: "empty uri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uri.NewResolver(tt.config).Candidates(tt.uri)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExpandTokenID(t *testing.T) {
	assert.Equal(t, "ipfs://QmHash/1.json", uri.ExpandTokenID("ipfs://QmHash/1.json", 1))
	assert.Equal(t,
		"https://api.example.com/000000000000000000000000000000000000000000000000000000000000002a.json",
		uri.ExpandTokenID("https://api.example.com/{id}.json", 42))
}
