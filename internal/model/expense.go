package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cost entry from the back-office form.
// Category: "supplies" | "payroll" | "rent" | "services" | "other"
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string          `gorm:"type:varchar(30);not null;index"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// IncurredOn is the business date, distinct from CreatedAt (entry time).
	IncurredOn    time.Time `gorm:"type:date;not null;index"`
	CreatedByUser string    `gorm:"type:varchar(60)"`
	CreatedAt     time.Time
}
