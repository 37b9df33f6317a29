package uri

import (
	"fmt"
	"strings"

	"github.com/sonobay/sonobay-indexer/internal/domain"
)

// Config holds configuration for the URI resolver
type Config struct {
	// IPFSGateways is the ordered list of IPFS gateways to try
	IPFSGateways []string
	// ArweaveGateways is the ordered list of Arweave gateways to try
	ArweaveGateways []string
}

// Resolver defines the interface for resolving token URIs
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Candidates returns the fetchable URLs for a token URI, in preference order.
	// ipfs:// and ar:// URIs expand to one URL per configured gateway,
	// http(s) URLs are returned as they are.
	Candidates(uri string) ([]string, error)
}

type resolver struct {
	config *Config
}

func NewResolver(config *Config) Resolver {
	cfg := &Config{}
	if config != nil {
		cfg.IPFSGateways = trimGateways(config.IPFSGateways)
		cfg.ArweaveGateways = trimGateways(config.ArweaveGateways)
	}
	if len(cfg.IPFSGateways) == 0 {
		cfg.IPFSGateways = []string{domain.DEFAULT_IPFS_GATEWAY}
	}
	return &resolver{config: cfg}
}

func (r *resolver) Candidates(uri string) ([]string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("empty uri")
	}

	// ipfs://<cid>/<path>, also tolerating the ipfs://ipfs/<cid> form
	if path, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		path = strings.TrimPrefix(path, "ipfs/")
		return expand(r.config.IPFSGateways, "/ipfs/", path)
	}

	if txID, ok := strings.CutPrefix(uri, "ar://"); ok {
		if len(r.config.ArweaveGateways) == 0 {
			return nil, fmt.Errorf("no Arweave gateways configured")
		}
		return expand(r.config.ArweaveGateways, "/", txID)
	}

	if strings.HasPrefix(uri, "https://") || strings.HasPrefix(uri, "http://") {
		// Gateway URLs are tried as given first, then through the configured gateways
		if _, path, ok := strings.Cut(uri, "/ipfs/"); ok && path != "" {
			candidates := []string{uri}
			gatewayURLs, _ := expand(r.config.IPFSGateways, "/ipfs/", path)
			for _, u := range gatewayURLs {
				if u != uri {
					candidates = append(candidates, u)
				}
			}
			return candidates, nil
		}
		return []string{uri}, nil
	}

	return nil, fmt.Errorf("unsupported uri scheme: %s", uri)
}

func expand(gateways []string, sep, path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("empty content path")
	}
	urls := make([]string, 0, len(gateways))
	for _, gw := range gateways {
		urls = append(urls, gw+sep+path)
	}
	return urls, nil
}

func trimGateways(gateways []string) []string {
	out := make([]string, 0, len(gateways))
	for _, gw := range gateways {
		gw = strings.TrimRight(strings.TrimSpace(gw), "/")
		if gw != "" {
			out = append(out, gw)
		}
	}
	return out
}

// ExpandTokenID substitutes the ERC1155 {id} placeholder with the
// zero-padded 64 character lowercase hex form of the token id
func ExpandTokenID(uri string, tokenID uint64) string {
	if !strings.Contains(uri, "{id}") {
		return uri
	}
	return strings.ReplaceAll(uri, "{id}", fmt.Sprintf("%064x", tokenID))
}
