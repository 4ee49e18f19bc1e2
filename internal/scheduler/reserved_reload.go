package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/shorty/internal/index"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/sources/reserved"
)

// ReservedReloader keeps the reserved codes index in sync with its file
type ReservedReloader struct {
	loader        *reserved.Loader
	index         *index.ReservedIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewReservedReloader creates a new reserved codes reloader
func NewReservedReloader(
	reservedFile string,
	idx *index.ReservedIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ReservedReloader {
	return &ReservedReloader{
		loader:        reserved.NewLoader(reservedFile),
		index:         idx,
		logger:        log.Named("reserved_reloader"),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once, then reloads on every tick or manual trigger.
// A zero interval disables the ticker.
func (rr *ReservedReloader) Start(ctx context.Context) error {
	if err := rr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	go func() {
		var tick <-chan time.Time
		if rr.interval > 0 {
			ticker := time.NewTicker(rr.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-tick:
				if err := rr.Reload(ctx); err != nil {
					rr.logger.Error("failed to reload reserved codes",
						logger.Error(err))
				}
			case <-rr.manualTrigger:
				rr.logger.Info("manual reload triggered")
				if err := rr.Reload(ctx); err != nil {
					rr.logger.Error("failed to reload reserved codes",
						logger.Error(err))
				}
			case <-rr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (rr *ReservedReloader) Stop() {
	close(rr.stopCh)
}

// Reload reads the reserved file and swaps the index contents.
// On failure the previous list stays active.
func (rr *ReservedReloader) Reload(_ context.Context) error {
	codes, err := rr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load reserved codes: %w", err)
	}

	rr.index.Update(codes)

	rr.logger.Info("reserved codes reloaded",
		logger.Int("count", len(codes)))

	return nil
}
