package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement records a manual stock change on an inventory item.
// Sale-driven decrements are NOT persisted here — the reduce endpoint
// returns its audit trail to the caller instead.
type StockMovement struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Kind: "manual_adjust" | "waste" | "purchase"
	Kind          string          `gorm:"type:varchar(20);not null"`
	Delta         decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = in, negative = out
	StockBefore   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockAfter    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason        string
	CreatedByUser string `gorm:"type:varchar(60)"`
	CreatedAt     time.Time

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}

func (StockMovement) TableName() string { return "stock_movements" }
