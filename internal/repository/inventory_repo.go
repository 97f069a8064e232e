package repository

import (
	"context"

	"brigadepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryRepository defines the data access contract for stocked items.
type InventoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	List(ctx context.Context) ([]model.InventoryItem, error)
	// UpdateStock writes stock_actual. The reduce flow always writes the
	// resolved absolute value, never a delta — deliberate last-write-wins.
	UpdateStock(ctx context.Context, id uuid.UUID, newStock decimal.Decimal) error
	// ListBelowThreshold feeds the low-stock alert scan and report.
	ListBelowThreshold(ctx context.Context) ([]model.InventoryItem, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) UpdateStock(ctx context.Context, id uuid.UUID, newStock decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("stock_actual", newStock).Error
}

func (r *inventoryRepo) ListBelowThreshold(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("COALESCE(stock_actual, quantity) <= min_threshold").
		Order("name ASC").
		Find(&items).Error
	return items, err
}
