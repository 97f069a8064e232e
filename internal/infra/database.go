package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the
// idempotent SQL patches the schema needs on top of the base migrations
// (partial indexes and columns added after initial deployment).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that the base migrations cannot
// express or that was added after initial deployment. Every statement is
// guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// menu_items.product_type was added after launch; legacy rows keep
		// an empty value and readers default it to 'individual'.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'menu_items') THEN
		    ALTER TABLE menu_items ADD COLUMN IF NOT EXISTS product_type VARCHAR(20) DEFAULT 'individual';
		  END IF;
		END $$`,
		// Partial index for the low-stock scan query.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'inventory_items')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventory_low_stock') THEN
		    CREATE INDEX idx_inventory_low_stock
		        ON inventory_items ((COALESCE(stock_actual, quantity)))
		        WHERE COALESCE(stock_actual, quantity) >= 0;
		  END IF;
		END $$`,
		// Station-card query index: open orders per station, oldest first.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'orders')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_orders_station_open') THEN
		    CREATE INDEX idx_orders_station_open
		        ON orders (station, created_at)
		        WHERE status IN ('open', 'in_progress');
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies schema patches for integration tests.
func RunMigrations(db *gorm.DB) error {
	return applySchemaPatches(db)
}
