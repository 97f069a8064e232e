package service

import (
	"context"
	"errors"
	"fmt"

	"brigadepos/internal/dto"
	"brigadepos/internal/model"
	"brigadepos/internal/repository"
	"brigadepos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrNoConsumptionData means the menu item has neither recipe lines nor
// ingredient links — a terminal business condition, not a storage fault.
var ErrNoConsumptionData = errors.New("no recipe or ingredients found for this product")

// LookupError wraps a storage failure on a row the reduce flow cannot
// proceed without.
type LookupError struct {
	Entity string
	Err    error
}

func (e *LookupError) Error() string { return fmt.Sprintf("%s lookup failed", e.Entity) }
func (e *LookupError) Unwrap() error { return e.Err }

// StockDecrement is the per-ingredient outcome of a reduce call. Skipped
// entries (read or write failure) keep Applied=false with the reason; the
// HTTP layer only serializes applied entries, so partial failures surface
// as a shorter results list.
type StockDecrement struct {
	InventoryItemID uuid.UUID
	PreviousStock   decimal.Decimal
	NewStock        decimal.Decimal
	Reduction       decimal.Decimal
	// HasReduction marks the recipe path — the legacy link path never
	// reported a reduction field and the dashboard depends on that shape.
	HasReduction bool
	Applied      bool
	SkipReason   string
}

// ReduceResult is the outcome of resolving and applying a menu item's
// consumption against inventory.
type ReduceResult struct {
	ProductType  string
	FallbackUsed bool
	Decrements   []StockDecrement
}

// InventoryService owns stock: sale-driven reduction, manual adjustments,
// and the movement audit log.
type InventoryService interface {
	// ReduceStock resolves the consumption list for a sold menu item and
	// applies floored decrements, one ingredient at a time. Per-ingredient
	// failures skip that ingredient; only whole-call preconditions fail the
	// call. Exactly one resolution path runs: recipe lines if any exist,
	// else ingredient links (implied quantity 1), else ErrNoConsumptionData.
	ReduceStock(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) (*ReduceResult, error)

	ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, username string) (*dto.AdjustStockResponse, error)
	ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type inventoryService struct {
	menuRepo     repository.MenuRepository
	recipeRepo   repository.RecipeRepository
	invRepo      repository.InventoryRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewInventoryService(
	menuRepo repository.MenuRepository,
	recipeRepo repository.RecipeRepository,
	invRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) InventoryService {
	return &inventoryService{
		menuRepo:     menuRepo,
		recipeRepo:   recipeRepo,
		invRepo:      invRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
	}
}

// ── ReduceStock ───────────────────────────────────────────────────────────────
// Sequential by design: later stock reads must observe earlier writes when
// ingredients repeat within one call. No transaction spans the loop — a
// failure mid-batch leaves earlier decrements in place (best-effort policy).

func (s *inventoryService) ReduceStock(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) (*ReduceResult, error) {
	item, err := s.menuRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, &LookupError{Entity: "menu item", Err: err}
	}

	productType := item.ProductType
	if productType == "" {
		productType = model.ProductTypeIndividual
	}

	lines, err := s.recipeRepo.ListByMenuItem(ctx, productID)
	if err != nil {
		// Legacy behavior preserved: any recipe-query error — not just
		// "no rows" — falls through to the ingredient-link path.
		log.Warn().
			Str("menu_item_id", productID.String()).
			Err(err).
			Msg("recipe lookup failed, falling back to ingredient links")
		lines = nil
	}

	if len(lines) > 0 {
		result := &ReduceResult{ProductType: productType}
		for _, line := range lines {
			reduction := line.Quantity.Mul(quantity)
			result.Decrements = append(result.Decrements,
				s.applyDecrement(ctx, line.InventoryItemID, reduction, true))
		}
		return result, nil
	}

	links, err := s.recipeRepo.ListLinksByMenuItem(ctx, productID)
	if err != nil {
		return nil, &LookupError{Entity: "ingredient link", Err: err}
	}
	if len(links) == 0 {
		return nil, ErrNoConsumptionData
	}

	result := &ReduceResult{ProductType: productType, FallbackUsed: true}
	for _, link := range links {
		// No declared ratio — a link consumes 1 unit per item sold.
		result.Decrements = append(result.Decrements,
			s.applyDecrement(ctx, link.InventoryItemID, quantity, false))
	}
	return result, nil
}

// applyDecrement reads one inventory item, writes back the floored stock,
// and never fails the batch: read or write errors mark the entry skipped.
func (s *inventoryService) applyDecrement(ctx context.Context, invID uuid.UUID, reduction decimal.Decimal, withReduction bool) StockDecrement {
	d := StockDecrement{InventoryItemID: invID}

	item, err := s.invRepo.FindByID(ctx, invID)
	if err != nil {
		log.Warn().Str("inventory_item_id", invID.String()).Err(err).
			Msg("reduce: ingredient read failed, skipping")
		d.SkipReason = "read failed"
		return d
	}

	current := item.CurrentStock()
	newStock := current.Sub(reduction)
	if newStock.IsNegative() {
		newStock = decimal.Zero
	}

	if err := s.invRepo.UpdateStock(ctx, invID, newStock); err != nil {
		log.Warn().Str("inventory_item_id", invID.String()).Err(err).
			Msg("reduce: stock write failed, skipping")
		d.SkipReason = "write failed"
		return d
	}

	d.Applied = true
	d.PreviousStock = current
	d.NewStock = newStock
	if withReduction {
		d.Reduction = reduction
		d.HasReduction = true
	}

	if s.dispatcher != nil && newStock.LessThanOrEqual(item.MinThreshold) {
		_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockPayload{
			InventoryItemID: invID.String(),
			Name:            item.Name,
			Stock:           newStock.String(),
			Unit:            item.Unit,
		})
	}

	return d
}

// ── Inventory listing / manual adjustments ───────────────────────────────────

func (s *inventoryService) ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.invRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		stock := item.CurrentStock()
		resp = append(resp, dto.InventoryItemResponse{
			ID:           item.ID.String(),
			Name:         item.Name,
			Unit:         item.Unit,
			Stock:        stock,
			MinThreshold: item.MinThreshold,
			LowStock:     stock.LessThanOrEqual(item.MinThreshold),
		})
	}
	return resp, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest, username string) (*dto.AdjustStockResponse, error) {
	item, err := s.invRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := item.CurrentStock()
	after := before.Add(req.Delta)
	if after.IsNegative() {
		after = decimal.Zero
	}

	if err := s.invRepo.UpdateStock(ctx, id, after); err != nil {
		return nil, err
	}

	mov := &model.StockMovement{
		InventoryItemID: id,
		Kind:            "manual_adjust",
		Delta:           req.Delta,
		StockBefore:     before,
		StockAfter:      after,
		Reason:          req.Reason,
		CreatedByUser:   username,
	}
	if err := s.movementRepo.Create(ctx, mov); err != nil {
		// The stock write already landed; losing the audit row is logged, not fatal.
		log.Error().Str("inventory_item_id", id.String()).Err(err).
			Msg("adjust: failed to record stock movement")
	}

	return &dto.AdjustStockResponse{
		InventoryItemID: id.String(),
		PreviousStock:   before,
		NewStock:        after,
	}, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	repoFilter := repository.StockMovementFilter{
		Kind:  filter.Kind,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if filter.InventoryItemID != "" {
		id, err := uuid.Parse(filter.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid inventory_item_id: %w", err)
		}
		repoFilter.InventoryItemID = &id
	}

	movements, total, err := s.movementRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		name := ""
		if m.InventoryItem != nil {
			name = m.InventoryItem.Name
		}
		data = append(data, dto.StockMovementResponse{
			ID:              m.ID.String(),
			InventoryItemID: m.InventoryItemID.String(),
			ItemName:        name,
			Kind:            m.Kind,
			Delta:           m.Delta,
			StockBefore:     m.StockBefore,
			StockAfter:      m.StockAfter,
			Reason:          m.Reason,
			CreatedAt:       m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.StockMovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
