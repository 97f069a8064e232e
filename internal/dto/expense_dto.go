package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category    string          `json:"category"    validate:"required,oneof=supplies payroll rent services other"`
	Description string          `json:"description" validate:"required,max=300"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	// IncurredOn: business date YYYY-MM-DD; empty = today
	IncurredOn string `json:"incurred_on" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseFilter is bound from the query string of GET /v1/expenses.
type ExpenseFilter struct {
	Month    string `form:"month"    validate:"omitempty,datetime=2006-01"` // YYYY-MM; empty = current month
	Category string `form:"category" validate:"omitempty,oneof=supplies payroll rent services other"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredOn  string          `json:"incurred_on"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
