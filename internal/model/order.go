package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle shown on the bar/kitchen station cards.
const (
	OrderStatusOpen       = "open"
	OrderStatusInProgress = "in_progress"
	OrderStatusServed     = "served"
	OrderStatusCancelled  = "cancelled"
)

// Order is a table order routed to a prep station.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TableNumber int       `gorm:"not null"`
	Station     string    `gorm:"type:varchar(20);not null;index"` // "bar" | "kitchen"
	Status      string    `gorm:"type:varchar(20);not null;default:'open';index"`
	Notes       *string
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes      *string

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}
