package service

import (
	"context"
	"errors"
	"fmt"

	"brigadepos/internal/dto"
	"brigadepos/internal/model"
	"brigadepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrInvalidStatusChange = errors.New("invalid order status change")

// OrderService backs the bar/kitchen station cards.
type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error)
}

type orderService struct {
	repo      repository.OrderRepository
	menuRepo  repository.MenuRepository
	inventory InventoryService
}

func NewOrderService(repo repository.OrderRepository, menuRepo repository.MenuRepository, inventory InventoryService) OrderService {
	return &orderService{repo: repo, menuRepo: menuRepo, inventory: inventory}
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	order := model.Order{
		TableNumber: req.TableNumber,
		Station:     req.Station,
		Status:      model.OrderStatusOpen,
		Notes:       req.Notes,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		mid, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid menu_item_id: %w", err)
		}
		m, err := s.menuRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, fmt.Errorf("menu item %s not found", item.MenuItemID)
		}
		if !m.Active {
			return nil, fmt.Errorf("menu item %s is inactive", m.Name)
		}
		lineTotal := m.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		order.Items = append(order.Items, model.OrderItem{
			MenuItemID: mid,
			Quantity:   item.Quantity,
			UnitPrice:  m.Price,
			Notes:      item.Notes,
		})
	}
	order.Total = total

	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, err
	}

	// Re-read with menu items preloaded for the response names.
	created, err := s.repo.FindByID(ctx, order.ID)
	if err != nil {
		return orderToResponse(&order), nil
	}
	return orderToResponse(created), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateStatus moves an order through its lifecycle. On the transition to
// served, each item's consumption is reduced against inventory with the
// same best-effort policy as the reduce endpoint: a failed item is logged
// and the rest continue.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderStatusServed || order.Status == model.OrderStatusCancelled {
		return nil, ErrInvalidStatusChange
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if status == model.OrderStatusServed {
		for _, item := range order.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			if _, err := s.inventory.ReduceStock(ctx, item.MenuItemID, qty); err != nil {
				log.Warn().
					Str("order_id", id.String()).
					Str("menu_item_id", item.MenuItemID.String()).
					Err(err).
					Msg("order: stock reduction failed for served item")
			}
		}
	}

	return orderToResponse(order), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		items = append(items, dto.OrderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Notes:      item.Notes,
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID.String(),
		TableNumber: o.TableNumber,
		Station:     o.Station,
		Status:      o.Status,
		Total:       o.Total,
		Items:       items,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
