package worker

// lowstock_cron.go
// Background goroutine that periodically scans inventory for items at or
// below their minimum threshold and enqueues alert jobs. Catches items that
// drift low through manual adjustments rather than sale decrements.

import (
	"context"
	"time"

	"brigadepos/internal/repository"

	"github.com/rs/zerolog/log"
)

// LowStockScanConfig holds the dependencies for the scan goroutine.
type LowStockScanConfig struct {
	InventoryRepo repository.InventoryRepository
	Dispatcher    *Dispatcher
	Period        time.Duration
}

// StartLowStockScan launches a background goroutine that ticks every Period,
// lists items below threshold, and enqueues an alert per item. The dispatcher
// dedups per item, so repeated ticks are cheap.
// It respects the context for graceful shutdown.
func StartLowStockScan(ctx context.Context, cfg LowStockScanConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Period)
		defer ticker.Stop()

		log.Info().Dur("period", cfg.Period).Msg("lowstock_scan: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lowstock_scan: shutting down")
				return
			case <-ticker.C:
				scanOnce(ctx, cfg)
			}
		}
	}()
}

func scanOnce(ctx context.Context, cfg LowStockScanConfig) {
	items, err := cfg.InventoryRepo.ListBelowThreshold(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lowstock_scan: inventory query failed")
		return
	}
	if len(items) == 0 {
		return
	}

	log.Info().Int("count", len(items)).Msg("lowstock_scan: items below threshold")

	for _, item := range items {
		payload := LowStockPayload{
			InventoryItemID: item.ID.String(),
			Name:            item.Name,
			Stock:           item.CurrentStock().String(),
			Unit:            item.Unit,
		}
		if err := cfg.Dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
			log.Error().Err(err).Str("item", item.Name).
				Msg("lowstock_scan: failed to enqueue alert")
		}
	}
}
