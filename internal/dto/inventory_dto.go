package dto

import "github.com/shopspring/decimal"

// ─── Reduce stock (sale consumption) ─────────────────────────────────────────

// ReduceStockRequest is the body of POST /v1/inventory/reduce.
// Quantity accepts fractional values (half portions are a thing at the bar).
type ReduceStockRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// DecrementResult is one applied stock decrement. Reduction is only present
// on the recipe path — the legacy ingredient-link path reports the simpler
// before/after shape the dashboard has always consumed.
type DecrementResult struct {
	InventoryItemID string           `json:"inventory_item_id"`
	PreviousStock   decimal.Decimal  `json:"previous_stock"`
	NewStock        decimal.Decimal  `json:"new_stock"`
	Reduction       *decimal.Decimal `json:"reduction,omitempty"`
}

// ReduceStockResponse is the 200 envelope. ProductType is set on the recipe
// path, Message on the ingredient-link fallback path.
type ReduceStockResponse struct {
	Success     bool              `json:"success"`
	ProductType string            `json:"product_type,omitempty"`
	Message     string            `json:"message,omitempty"`
	Results     []DecrementResult `json:"results"`
}

// ─── Inventory listing / manual adjustment ───────────────────────────────────

type InventoryItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
	LowStock     bool            `json:"low_stock"`
}

type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"required,max=200"`
}

type AdjustStockResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	PreviousStock   decimal.Decimal `json:"previous_stock"`
	NewStock        decimal.Decimal `json:"new_stock"`
}

// StockMovementFilter is bound from the query string of GET /v1/inventory/movements.
type StockMovementFilter struct {
	InventoryItemID string `form:"inventory_item_id"`
	Kind            string `form:"kind"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type StockMovementResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	ItemName        string          `json:"item_name"`
	Kind            string          `json:"kind"`
	Delta           decimal.Decimal `json:"delta"`
	StockBefore     decimal.Decimal `json:"stock_before"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	Reason          string          `json:"reason"`
	CreatedAt       string          `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
