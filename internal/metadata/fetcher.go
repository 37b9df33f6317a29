package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/providers/ethereum"
	"github.com/sonobay/sonobay-indexer/internal/uri"
)

// Fetcher retrieves the off-chain metadata of a midi token
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/metadata_fetcher.go -package=mocks -mock_names=Fetcher=MockMetadataFetcher
type Fetcher interface {
	// Fetch reads the token uri from the contract and downloads the metadata document.
	// It returns an error when no candidate URL serves a parsable document.
	Fetch(ctx context.Context, tokenID uint64) (*domain.MIDIMetadata, error)
}

type fetcher struct {
	contract    ethereum.MidiContract
	httpClient  adapter.HTTPClient
	uriResolver uri.Resolver
	json        adapter.JSON
}

func NewFetcher(contract ethereum.MidiContract, httpClient adapter.HTTPClient, uriResolver uri.Resolver, json adapter.JSON) Fetcher {
	return &fetcher{
		contract:    contract,
		httpClient:  httpClient,
		uriResolver: uriResolver,
		json:        json,
	}
}

func (f *fetcher) Fetch(ctx context.Context, tokenID uint64) (*domain.MIDIMetadata, error) {
	tokenURI, err := f.contract.URI(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read token uri: %w", err)
	}

	candidates, err := f.uriResolver.Candidates(uri.ExpandTokenID(tokenURI, tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token uri %q: %w", tokenURI, err)
	}

	var errs []error
	for _, url := range candidates {
		body, err := f.httpClient.GetBytes(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WarnCtx(ctx, "Failed to fetch metadata",
				zap.Uint64("tokenID", tokenID),
				zap.String("url", url),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}

		return f.parse(ctx, tokenID, url, body)
	}

	return nil, fmt.Errorf("no candidate served metadata for %q: %w", tokenURI, errors.Join(errs...))
}

func (f *fetcher) parse(ctx context.Context, tokenID uint64, url string, body []byte) (*domain.MIDIMetadata, error) {
	if mtype := mimetype.Detect(body); !mtype.Is("application/json") {
		logger.WarnCtx(ctx, "Metadata is not served as JSON",
			zap.Uint64("tokenID", tokenID),
			zap.String("url", url),
			zap.String("mimeType", mtype.String()))
	}

	var metadata domain.MIDIMetadata
	if err := f.json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata from %s: %w", url, err)
	}
	metadata.Raw = body

	logger.DebugCtx(ctx, "Fetched metadata",
		zap.Uint64("tokenID", tokenID),
		zap.String("url", url),
		zap.Int("devices", len(metadata.Properties.Devices)))

	return &metadata, nil
}
