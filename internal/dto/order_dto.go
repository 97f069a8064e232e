package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	MenuItemID string  `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int     `json:"quantity"     validate:"required,min=1"`
	Notes      *string `json:"notes"        validate:"omitempty,max=200"`
}

type CreateOrderRequest struct {
	TableNumber int                `json:"table_number" validate:"required,min=1"`
	Station     string             `json:"station"      validate:"required,oneof=bar kitchen"`
	Items       []OrderItemRequest `json:"items"        validate:"required,min=1,dive"`
	Notes       *string            `json:"notes"        validate:"omitempty,max=300"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress served cancelled"`
}

// OrderFilter is bound from the query string of GET /v1/orders.
type OrderFilter struct {
	Station string `form:"station"              validate:"omitempty,oneof=bar kitchen"`
	Status  string `form:"status,default=open"` // open | in_progress | served | cancelled | all
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Notes      *string         `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	TableNumber int                 `json:"table_number"`
	Station     string              `json:"station"`
	Status      string              `json:"status"`
	Total       decimal.Decimal     `json:"total"`
	Items       []OrderItemResponse `json:"items"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
