package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store remembers which swaps already reached a terminal status so they are
// not polled or published again.
type Store interface {
	Close() error
	Finalized(id string) (bool, error)
	MarkFinalized(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	FinalizedTTL    time.Duration
	CleanupInterval time.Duration
}

const (
	defaultFinalizedTTL    = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.FinalizedTTL <= 0 {
		opts.FinalizedTTL = defaultFinalizedTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                   { return nil }
func (noopStore) Finalized(string) (bool, error) { return false, nil }
func (noopStore) MarkFinalized(string) error     { return nil }
