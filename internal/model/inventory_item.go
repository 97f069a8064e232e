package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked ingredient (flour, gin, napkins…).
// StockActual is the live on-hand amount; Quantity is the legacy stock
// column kept for rows migrated from the old spreadsheet import.
type InventoryItem struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"index;not null"`
	Unit string    `gorm:"type:varchar(20);not null;default:'unit'"`
	// StockActual takes precedence over Quantity when present.
	StockActual *decimal.Decimal `gorm:"type:decimal(12,3)"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	// MinThreshold drives the low-stock alert scan.
	MinThreshold decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CurrentStock resolves the on-hand amount: stock_actual wins when set,
// otherwise the legacy quantity column.
func (i *InventoryItem) CurrentStock() decimal.Decimal {
	if i.StockActual != nil {
		return *i.StockActual
	}
	return i.Quantity
}
