package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesDayRow is one row of the per-day sales aggregate.
type SalesDayRow struct {
	Day     time.Time       `gorm:"column:day"`
	Orders  int64           `gorm:"column:orders"`
	Revenue decimal.Decimal `gorm:"column:revenue"`
}

// ExpenseCategoryRow is one row of the per-category expense aggregate.
type ExpenseCategoryRow struct {
	Category string          `gorm:"column:category"`
	Total    decimal.Decimal `gorm:"column:total"`
}

// ReportRepository runs the aggregate queries behind the dashboard charts.
// Raw SQL: GORM's expression builder gets in the way for GROUP BY over dates.
type ReportRepository interface {
	SalesByDay(ctx context.Context, from, to time.Time) ([]SalesDayRow, error)
	ExpensesByCategory(ctx context.Context, from, to time.Time) ([]ExpenseCategoryRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) SalesByDay(ctx context.Context, from, to time.Time) ([]SalesDayRow, error) {
	var rows []SalesDayRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at)       AS day,
		       COUNT(*)               AS orders,
		       COALESCE(SUM(total),0) AS revenue
		FROM orders
		WHERE status = 'served'
		  AND created_at >= ? AND created_at < ?
		GROUP BY DATE(created_at)
		ORDER BY day ASC`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ExpensesByCategory(ctx context.Context, from, to time.Time) ([]ExpenseCategoryRow, error) {
	var rows []ExpenseCategoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT category,
		       COALESCE(SUM(amount),0) AS total
		FROM expenses
		WHERE incurred_on >= ? AND incurred_on < ?
		GROUP BY category
		ORDER BY total DESC`, from, to).Scan(&rows).Error
	return rows, err
}
