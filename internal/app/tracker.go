package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swidge-xyz/rango-wrapper/internal/config"
	"github.com/swidge-xyz/rango-wrapper/internal/domain"
	"github.com/swidge-xyz/rango-wrapper/internal/logger"
	"github.com/swidge-xyz/rango-wrapper/internal/storage"
	"github.com/swidge-xyz/rango-wrapper/internal/tracker"
	"github.com/swidge-xyz/rango-wrapper/pkg/httpclient"
	"github.com/swidge-xyz/rango-wrapper/pkg/publishers"
	"github.com/swidge-xyz/rango-wrapper/pkg/rango"
	"github.com/swidge-xyz/rango-wrapper/pkg/watchlist"
)

// Tracker is the swap status tracker runtime. It owns the poll loop and the
// resources (store, publishers) the tracker service depends on.
type Tracker struct {
	cfg          *config.Config
	swaps        []domain.Swap
	fanout       *publishers.Fanout
	service      *tracker.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewTracker builds a tracker runtime from config files.
func NewTracker(ctx context.Context, cfg *config.Config, log logger.Logger) (*Tracker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	swapReg, err := watchlist.LoadRegistry(cfg.WatchlistFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	swaps := swapReg.All()
	swapIDs := make([]string, 0, len(swaps))
	for _, s := range swaps {
		swapIDs = append(swapIDs, s.ID)
	}
	log.InfoObj("watchlist loaded", "watchlist_meta", map[string]any{
		"count": len(swapIDs),
		"ids":   swapIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		FinalizedTTL:    cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"finalized_ttl_seconds":    int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := rango.NewClient(NewAdapter(cfg))

	return &Tracker{
		cfg:          cfg,
		swaps:        swaps,
		fanout:       fanout,
		service:      tracker.NewService(client, fanout, log, store),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// NewAdapter builds the authenticated Rango request adapter from config.
func NewAdapter(cfg *config.Config) *rango.Adapter {
	return rango.New(rango.Config{
		BaseURL: cfg.RangoBaseURL,
		APIKey:  cfg.RangoAPIKey,
	}, httpclient.NewRestyClient(cfg.HTTPTimeout))
}

// Run starts the poll loop until the context is cancelled.
func (t *Tracker) Run(ctx context.Context) error {
	if t == nil || t.service == nil {
		return fmt.Errorf("tracker is not initialized")
	}
	defer t.close()

	if len(t.swaps) == 0 {
		t.log.WarnObj("no swaps configured; tracker idle", "watchlist_file", t.cfg.WatchlistFile)
		<-ctx.Done()
		return nil
	}

	t.log.InfoObj("tracker loop starting", "tracker_state", map[string]any{
		"swaps_count":      len(t.swaps),
		"publishers_count": t.fanout.Size(),
		"poll_interval":    t.pollInterval.String(),
	})

	if err := t.runOnce(ctx); err != nil {
		t.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.InfoObj("tracker loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := t.runOnce(ctx); err != nil {
				t.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

func (t *Tracker) runOnce(ctx context.Context) error {
	start := time.Now()
	t.log.InfoObj("poll started", "poll_meta", map[string]any{
		"swaps_count": len(t.swaps),
		"started_at":  start.UTC(),
	})
	if err := t.service.Run(ctx, t.swaps); err != nil {
		return err
	}
	t.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"swaps_count": len(t.swaps),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}

func (t *Tracker) close() {
	var errs []error
	if t.store != nil {
		if err := t.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}
	if err := t.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		t.log.ErrorObj("tracker shutdown failed", "error", err)
	}
}
