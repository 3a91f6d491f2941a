// ABOUTME: Builder for the closed set of supported indexer kinds
// ABOUTME: Turns indexer configuration into ready to use adapters at startup

// Package indexer builds the configured torrent site adapters.
package indexer

import (
	"fmt"

	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/indexer/bitsearch"
	"indexer-aggregator-api/core/indexer/leetx"
	"indexer-aggregator-api/core/indexer/piratebay"
	"indexer-aggregator-api/core/interfaces"
)

// Kind identifies one of the supported indexer implementations
type Kind string

const (
	Kind1337x        Kind = leetx.Kind
	KindBitsearch    Kind = bitsearch.Kind
	KindThePirateBay Kind = piratebay.Kind
)

// Kinds lists every supported kind in default registration order
var Kinds = []Kind{Kind1337x, KindBitsearch, KindThePirateBay}

// Config describes one configured indexer
type Config struct {
	// Name is unique across indexers and used as the entry origin
	Name string
	// Type selects the implementation
	Type Kind
	// BaseURL overrides the site address
	BaseURL string
	// APIURL overrides the API address for JSON indexers
	APIURL string
}

// IsKnown reports whether k names a supported implementation
func (k Kind) IsKnown() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Build creates the indexer described by cfg
func Build(cfg Config, deps interfaces.Dependencies) (interfaces.Indexer, error) {
	switch cfg.Type {
	case Kind1337x:
		return leetx.New(cfg.Name, cfg.BaseURL, deps), nil
	case KindBitsearch:
		return bitsearch.New(cfg.Name, cfg.BaseURL, deps), nil
	case KindThePirateBay:
		return piratebay.New(cfg.Name, cfg.APIURL, cfg.BaseURL, deps), nil
	default:
		return nil, fmt.Errorf("unknown indexer type %q", cfg.Type)
	}
}

// BuildAll creates every configured indexer, keeping configuration order
func BuildAll(configs []Config, deps interfaces.Dependencies) ([]interfaces.Indexer, error) {
	indexers := make([]interfaces.Indexer, 0, len(configs))
	for _, cfg := range configs {
		ix, err := Build(cfg, deps)
		if err != nil {
			return nil, errors.WrapError(err, fmt.Sprintf("building indexer %q", cfg.Name))
		}
		if deps.Logger != nil {
			deps.Logger.Info("Indexer configured", map[string]interface{}{
				"name": ix.Name(),
				"type": string(cfg.Type),
			})
		}
		indexers = append(indexers, ix)
	}
	return indexers, nil
}

// DefaultConfigs returns one indexer of every kind with default addresses
func DefaultConfigs() []Config {
	configs := make([]Config, 0, len(Kinds))
	for _, kind := range Kinds {
		configs = append(configs, Config{Name: string(kind), Type: kind})
	}
	return configs
}
