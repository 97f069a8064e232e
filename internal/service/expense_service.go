package service

import (
	"context"
	"fmt"
	"time"

	"brigadepos/internal/dto"
	"brigadepos/internal/model"
	"brigadepos/internal/repository"
)

// ExpenseService backs the back-office expense entry form.
type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest, username string) (*dto.ExpenseResponse, error)
	List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest, username string) (*dto.ExpenseResponse, error) {
	incurredOn := time.Now().UTC().Truncate(24 * time.Hour)
	if req.IncurredOn != "" {
		parsed, err := time.Parse("2006-01-02", req.IncurredOn)
		if err != nil {
			return nil, fmt.Errorf("invalid incurred_on: %w", err)
		}
		incurredOn = parsed
	}

	expense := model.Expense{
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		IncurredOn:    incurredOn,
		CreatedByUser: username,
	}
	if err := s.repo.Create(ctx, &expense); err != nil {
		return nil, err
	}
	return expenseToResponse(&expense), nil
}

func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	from, to, err := monthRange(filter.Month)
	if err != nil {
		return nil, err
	}

	expenses, total, err := s.repo.List(ctx, repository.ExpenseFilter{
		From:     from,
		To:       to,
		Category: filter.Category,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		data = append(data, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// monthRange resolves "YYYY-MM" (empty = current month) to [first, next-first).
func monthRange(month string) (time.Time, time.Time, error) {
	var from time.Time
	if month == "" {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month: %w", err)
		}
		from = parsed
	}
	return from, from.AddDate(0, 1, 0), nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		IncurredOn:  e.IncurredOn.Format("2006-01-02"),
		CreatedBy:   e.CreatedByUser,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
