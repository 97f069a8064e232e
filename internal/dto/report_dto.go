package dto

import "github.com/shopspring/decimal"

// SalesPoint is one day of the sales time series consumed by the
// dashboard charts.
type SalesPoint struct {
	Day     string          `json:"day"` // YYYY-MM-DD
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type SalesReportResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Points []SalesPoint    `json:"points"`
	Total  decimal.Decimal `json:"total"`
	Orders int64           `json:"orders"`
	AvgDay decimal.Decimal `json:"avg_per_day"`
}

type ExpenseCategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type ExpenseReportResponse struct {
	Month      string                 `json:"month"`
	Categories []ExpenseCategoryTotal `json:"categories"`
	Total      decimal.Decimal        `json:"total"`
}

type LowStockItem struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Stock           decimal.Decimal `json:"stock"`
	MinThreshold    decimal.Decimal `json:"min_threshold"`
	Unit            string          `json:"unit"`
}

type LowStockReportResponse struct {
	Items []LowStockItem `json:"items"`
	Count int            `json:"count"`
}
