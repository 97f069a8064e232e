package repository

import (
	"context"

	"brigadepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository resolves the consumption data for a menu item:
// recipe lines first, ingredient links as the legacy fallback.
type RecipeRepository interface {
	ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.RecipeLine, error)
	ListLinksByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.IngredientLink, error)
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func (r *recipeRepo) ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.RecipeLine, error) {
	var lines []model.RecipeLine
	err := r.db.WithContext(ctx).Where("menu_item_id = ?", menuItemID).Find(&lines).Error
	return lines, err
}

func (r *recipeRepo) ListLinksByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.IngredientLink, error) {
	var links []model.IngredientLink
	err := r.db.WithContext(ctx).Where("menu_item_id = ?", menuItemID).Find(&links).Error
	return links, err
}
