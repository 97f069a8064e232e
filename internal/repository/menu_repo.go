package repository

import (
	"context"

	"brigadepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository defines the data access contract for menu items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type MenuRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, station string) ([]model.MenuItem, error)
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *menuRepo) List(ctx context.Context, station string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	q := r.db.WithContext(ctx).Where("active = true")
	if station != "" {
		q = q.Where("station = ?", station)
	}
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}
