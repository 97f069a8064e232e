package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product types recognized by the sales flow.
const (
	ProductTypeIndividual = "individual"
	ProductTypeCombo      = "combo"
	ProductTypeOther      = "other"
)

// MenuItem is a sellable dish or drink shown on the station cards.
// Consumption ratios live in RecipeLine; IngredientLink is the legacy
// linkage used when an item was created before recipes existed.
type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	// ProductType: "individual" | "combo" | "other". Rows predating the
	// column may carry an empty value — readers must default to "individual".
	ProductType string          `gorm:"type:varchar(20);default:'individual'"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Station routes the item to a prep screen: "bar" | "kitchen"
	Station   string `gorm:"type:varchar(20);not null;default:'kitchen'"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
