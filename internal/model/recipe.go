package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeLine declares how much of an inventory item one sold unit of a
// menu item consumes. The primary source of consumption ratios.
type RecipeLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(10,3);not null"`

	MenuItem      *MenuItem      `gorm:"foreignKey:MenuItemID"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}

// TableName overrides GORM's pluralization (recipe_lines is already plural-safe,
// kept explicit to match the SQL migrations).
func (RecipeLine) TableName() string { return "recipe_lines" }

// IngredientLink is the fallback linkage for menu items that predate recipe
// lines. A link implies a consumption of exactly 1 unit per item sold.
type IngredientLink struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuItemID      uuid.UUID `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;not null;index"`

	MenuItem      *MenuItem      `gorm:"foreignKey:MenuItemID"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}

func (IngredientLink) TableName() string { return "ingredient_links" }
