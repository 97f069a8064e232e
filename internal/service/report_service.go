package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brigadepos/internal/dto"
	"brigadepos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Chart data goes stale quickly but the dashboard polls aggressively, so a
// short cache keeps the aggregate queries off the hot path.
const reportCacheTTL = 60 * time.Second

// ReportService computes the aggregates behind the dashboard charts.
type ReportService interface {
	Sales(ctx context.Context, from, to string) (*dto.SalesReportResponse, error)
	Expenses(ctx context.Context, month string) (*dto.ExpenseReportResponse, error)
	LowStock(ctx context.Context) (*dto.LowStockReportResponse, error)
}

type reportService struct {
	repo    repository.ReportRepository
	invRepo repository.InventoryRepository
	rdb     *redis.Client
}

func NewReportService(repo repository.ReportRepository, invRepo repository.InventoryRepository, rdb *redis.Client) ReportService {
	return &reportService{repo: repo, invRepo: invRepo, rdb: rdb}
}

// Sales returns the per-day order count and revenue for [from, to].
// Dates are YYYY-MM-DD; empty range defaults to the last 30 days.
func (s *reportService) Sales(ctx context.Context, from, to string) (*dto.SalesReportResponse, error) {
	fromT, toT, err := salesRange(from, to)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:sales:%s:%s", fromT.Format("2006-01-02"), toT.Format("2006-01-02"))
	if cached := s.getCached(ctx, cacheKey); cached != nil {
		var resp dto.SalesReportResponse
		if json.Unmarshal(cached, &resp) == nil {
			return &resp, nil
		}
	}

	rows, err := s.repo.SalesByDay(ctx, fromT, toT)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:   fromT.Format("2006-01-02"),
		To:     toT.AddDate(0, 0, -1).Format("2006-01-02"),
		Points: make([]dto.SalesPoint, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Points = append(resp.Points, dto.SalesPoint{
			Day:     row.Day.Format("2006-01-02"),
			Orders:  row.Orders,
			Revenue: row.Revenue,
		})
		resp.Total = resp.Total.Add(row.Revenue)
		resp.Orders += row.Orders
	}
	days := toT.Sub(fromT).Hours() / 24
	if days >= 1 {
		resp.AvgDay = resp.Total.Div(decimal.NewFromFloat(days)).Round(2)
	}

	s.setCached(ctx, cacheKey, resp)
	return resp, nil
}

func (s *reportService) Expenses(ctx context.Context, month string) (*dto.ExpenseReportResponse, error) {
	from, to, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	cacheKey := "report:expenses:" + from.Format("2006-01")
	if cached := s.getCached(ctx, cacheKey); cached != nil {
		var resp dto.ExpenseReportResponse
		if json.Unmarshal(cached, &resp) == nil {
			return &resp, nil
		}
	}

	rows, err := s.repo.ExpensesByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExpenseReportResponse{
		Month:      from.Format("2006-01"),
		Categories: make([]dto.ExpenseCategoryTotal, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Categories = append(resp.Categories, dto.ExpenseCategoryTotal{
			Category: row.Category,
			Total:    row.Total,
		})
		resp.Total = resp.Total.Add(row.Total)
	}

	s.setCached(ctx, cacheKey, resp)
	return resp, nil
}

// LowStock is never cached — the whole point is seeing the current state.
func (s *reportService) LowStock(ctx context.Context) (*dto.LowStockReportResponse, error) {
	items, err := s.invRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.LowStockReportResponse{Items: make([]dto.LowStockItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.LowStockItem{
			InventoryItemID: item.ID.String(),
			Name:            item.Name,
			Stock:           item.CurrentStock(),
			MinThreshold:    item.MinThreshold,
			Unit:            item.Unit,
		})
	}
	resp.Count = len(resp.Items)
	return resp, nil
}

// getCached / setCached are best effort — a dead Redis only costs latency.

func (s *reportService) getCached(ctx context.Context, key string) []byte {
	if s.rdb == nil {
		return nil
	}
	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return cached
}

func (s *reportService) setCached(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	if b, err := json.Marshal(v); err == nil {
		_ = s.rdb.Set(ctx, key, b, reportCacheTTL).Err()
	}
}

// salesRange resolves the [from, to) window; `to` is inclusive in the query
// string so one day is added. Empty range = last 30 days.
func salesRange(from, to string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	fromT := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	toT := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
		}
		fromT = parsed
	}
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
		}
		toT = parsed.AddDate(0, 0, 1)
	}
	if !toT.After(fromT) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid range: to precedes from")
	}
	return fromT, toT, nil
}
