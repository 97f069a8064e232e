package repository

import (
	"context"
	"time"

	"brigadepos/internal/model"

	"gorm.io/gorm"
)

// ExpenseFilter is the resolved (already parsed) filter for listing expenses.
type ExpenseFilter struct {
	From     time.Time
	To       time.Time
	Category string
	Page     int
	Limit    int
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, int64, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("incurred_on >= ? AND incurred_on < ?", filter.From, filter.To)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("incurred_on DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&expenses).Error
	return expenses, total, err
}
