package service

import (
	"context"
	"errors"
	"testing"

	"brigadepos/internal/dto"
	"brigadepos/internal/model"
	"brigadepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
	err   error
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	m, ok := r.items[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, _ string) ([]model.MenuItem, error) {
	return nil, nil
}

var _ repository.MenuRepository = (*stubMenuRepo)(nil)

type stubRecipeRepo struct {
	lines    map[uuid.UUID][]model.RecipeLine
	links    map[uuid.UUID][]model.IngredientLink
	linesErr error
	linksErr error
}

func (r *stubRecipeRepo) ListByMenuItem(_ context.Context, id uuid.UUID) ([]model.RecipeLine, error) {
	if r.linesErr != nil {
		return nil, r.linesErr
	}
	return r.lines[id], nil
}

func (r *stubRecipeRepo) ListLinksByMenuItem(_ context.Context, id uuid.UUID) ([]model.IngredientLink, error) {
	if r.linksErr != nil {
		return nil, r.linksErr
	}
	return r.links[id], nil
}

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

type stubInventoryRepo struct {
	items    map[uuid.UUID]*model.InventoryItem
	readErr  map[uuid.UUID]error
	writeErr map[uuid.UUID]error
	writes   int
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		items:    make(map[uuid.UUID]*model.InventoryItem),
		readErr:  make(map[uuid.UUID]error),
		writeErr: make(map[uuid.UUID]error),
	}
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	if err := r.readErr[id]; err != nil {
		return nil, err
	}
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return item, nil
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubInventoryRepo) UpdateStock(_ context.Context, id uuid.UUID, newStock decimal.Decimal) error {
	if err := r.writeErr[id]; err != nil {
		return err
	}
	item, ok := r.items[id]
	if !ok {
		return errors.New("record not found")
	}
	item.StockActual = &newStock
	r.writes++
	return nil
}

func (r *stubInventoryRepo) ListBelowThreshold(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if item.CurrentStock().LessThanOrEqual(item.MinThreshold) {
			out = append(out, *item)
		}
	}
	return out, nil
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

type stubMovementRepo struct {
	movements []model.StockMovement
	err       error
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	if r.err != nil {
		return r.err
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fixture struct {
	menu   *stubMenuRepo
	recipe *stubRecipeRepo
	inv    *stubInventoryRepo
	mov    *stubMovementRepo
	svc    InventoryService
}

func newFixture() *fixture {
	f := &fixture{
		menu:   &stubMenuRepo{items: make(map[uuid.UUID]*model.MenuItem)},
		recipe: &stubRecipeRepo{lines: make(map[uuid.UUID][]model.RecipeLine), links: make(map[uuid.UUID][]model.IngredientLink)},
		inv:    newStubInventoryRepo(),
		mov:    &stubMovementRepo{},
	}
	f.svc = NewInventoryService(f.menu, f.recipe, f.inv, f.mov, nil)
	return f
}

func (f *fixture) addMenuItem(productType string) uuid.UUID {
	id := uuid.New()
	f.menu.items[id] = &model.MenuItem{ID: id, Name: "item", ProductType: productType, Active: true}
	return id
}

func (f *fixture) addInventory(stockActual *decimal.Decimal, quantity decimal.Decimal) uuid.UUID {
	id := uuid.New()
	f.inv.items[id] = &model.InventoryItem{ID: id, Name: "ingredient", Unit: "unit", StockActual: stockActual, Quantity: quantity}
	return id
}

// ── ReduceStock: recipe path ─────────────────────────────────────────────────

func TestReduceStockRecipePath(t *testing.T) {
	f := newFixture()
	burger := f.addMenuItem("individual")
	bun := f.addInventory(decPtr("10"), decimal.Zero)
	patty := f.addInventory(decPtr("20"), decimal.Zero)
	f.recipe.lines[burger] = []model.RecipeLine{
		{MenuItemID: burger, InventoryItemID: bun, Quantity: dec("1")},
		{MenuItemID: burger, InventoryItemID: patty, Quantity: dec("2")},
	}

	result, err := f.svc.ReduceStock(context.Background(), burger, dec("3"))
	require.NoError(t, err)
	assert.Equal(t, "individual", result.ProductType)
	assert.False(t, result.FallbackUsed)
	require.Len(t, result.Decrements, 2)

	assert.True(t, result.Decrements[0].Applied)
	assert.True(t, result.Decrements[0].HasReduction)
	assert.True(t, result.Decrements[0].PreviousStock.Equal(dec("10")))
	assert.True(t, result.Decrements[0].NewStock.Equal(dec("7")))
	assert.True(t, result.Decrements[0].Reduction.Equal(dec("3")))

	assert.True(t, result.Decrements[1].PreviousStock.Equal(dec("20")))
	assert.True(t, result.Decrements[1].NewStock.Equal(dec("14")))
	assert.True(t, result.Decrements[1].Reduction.Equal(dec("6")))

	// Writes landed on the stubs
	assert.True(t, f.inv.items[bun].StockActual.Equal(dec("7")))
	assert.True(t, f.inv.items[patty].StockActual.Equal(dec("14")))
}

func TestReduceStockNeverNegative(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")
	ing := f.addInventory(decPtr("2"), decimal.Zero)
	f.recipe.lines[item] = []model.RecipeLine{{MenuItemID: item, InventoryItemID: ing, Quantity: dec("5")}}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err)
	require.Len(t, result.Decrements, 1)
	assert.True(t, result.Decrements[0].NewStock.IsZero())
	assert.True(t, result.Decrements[0].PreviousStock.Equal(dec("2")))
	// The reported reduction is still the full consumption, not the clamp.
	assert.True(t, result.Decrements[0].Reduction.Equal(dec("5")))
}

func TestReduceStockStockActualPrecedence(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")
	// stock_actual nil — the legacy quantity column is the stock
	legacy := f.addInventory(nil, dec("8"))
	// stock_actual present — wins even when quantity disagrees
	live := f.addInventory(decPtr("3"), dec("99"))
	f.recipe.lines[item] = []model.RecipeLine{
		{MenuItemID: item, InventoryItemID: legacy, Quantity: dec("1")},
		{MenuItemID: item, InventoryItemID: live, Quantity: dec("1")},
	}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err)
	require.Len(t, result.Decrements, 2)
	assert.True(t, result.Decrements[0].PreviousStock.Equal(dec("8")))
	assert.True(t, result.Decrements[0].NewStock.Equal(dec("7")))
	assert.True(t, result.Decrements[1].PreviousStock.Equal(dec("3")))
	assert.True(t, result.Decrements[1].NewStock.Equal(dec("2")))
}

func TestReduceStockRepeatedIngredientSeesEarlierWrite(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("combo")
	ing := f.addInventory(decPtr("10"), decimal.Zero)
	f.recipe.lines[item] = []model.RecipeLine{
		{MenuItemID: item, InventoryItemID: ing, Quantity: dec("1")},
		{MenuItemID: item, InventoryItemID: ing, Quantity: dec("1")},
	}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err)
	require.Len(t, result.Decrements, 2)
	assert.True(t, result.Decrements[0].NewStock.Equal(dec("9")))
	// Sequential loop: the second line reads the first line's write.
	assert.True(t, result.Decrements[1].PreviousStock.Equal(dec("9")))
	assert.True(t, result.Decrements[1].NewStock.Equal(dec("8")))
}

// ── ReduceStock: fallback path ───────────────────────────────────────────────

func TestReduceStockFallbackPath(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")
	a := f.addInventory(decPtr("5"), decimal.Zero)
	b := f.addInventory(decPtr("9"), decimal.Zero)
	f.recipe.links[item] = []model.IngredientLink{
		{MenuItemID: item, InventoryItemID: a},
		{MenuItemID: item, InventoryItemID: b},
	}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("2"))
	require.NoError(t, err)
	assert.True(t, result.FallbackUsed)
	require.Len(t, result.Decrements, 2)
	for _, d := range result.Decrements {
		assert.True(t, d.Applied)
		// Links imply 1 unit per item sold and report no reduction field.
		assert.False(t, d.HasReduction)
	}
	assert.True(t, result.Decrements[0].NewStock.Equal(dec("3")))
	assert.True(t, result.Decrements[1].NewStock.Equal(dec("7")))
}

func TestReduceStockRecipeFetchErrorFallsThrough(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")
	a := f.addInventory(decPtr("4"), decimal.Zero)
	f.recipe.linesErr = errors.New("connection reset")
	f.recipe.links[item] = []model.IngredientLink{{MenuItemID: item, InventoryItemID: a}}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err)
	assert.True(t, result.FallbackUsed)
	require.Len(t, result.Decrements, 1)
	assert.True(t, result.Decrements[0].NewStock.Equal(dec("3")))
}

func TestReduceStockNoConsumptionData(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")

	_, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.ErrorIs(t, err, ErrNoConsumptionData)
	assert.Zero(t, f.inv.writes, "no stock writes on the no-data path")
}

// ── ReduceStock: partial failures ────────────────────────────────────────────

func TestReduceStockWriteFailureSkipsIngredient(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")
	ok1 := f.addInventory(decPtr("10"), decimal.Zero)
	bad := f.addInventory(decPtr("10"), decimal.Zero)
	ok2 := f.addInventory(decPtr("10"), decimal.Zero)
	f.inv.writeErr[bad] = errors.New("write timeout")
	f.recipe.lines[item] = []model.RecipeLine{
		{MenuItemID: item, InventoryItemID: ok1, Quantity: dec("1")},
		{MenuItemID: item, InventoryItemID: bad, Quantity: dec("1")},
		{MenuItemID: item, InventoryItemID: ok2, Quantity: dec("1")},
	}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err, "partial skips never fail the call")
	require.Len(t, result.Decrements, 3)

	applied := 0
	for _, d := range result.Decrements {
		if d.Applied {
			applied++
		}
	}
	assert.Equal(t, 2, applied)
	assert.Equal(t, "write failed", result.Decrements[1].SkipReason)
	// The failed item's stock is untouched; the others landed.
	assert.True(t, f.inv.items[bad].StockActual.Equal(dec("10")))
	assert.True(t, f.inv.items[ok1].StockActual.Equal(dec("9")))
	assert.True(t, f.inv.items[ok2].StockActual.Equal(dec("9")))
}

func TestReduceStockReadFailureSkipsIngredient(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("individual")
	bad := f.addInventory(decPtr("10"), decimal.Zero)
	good := f.addInventory(decPtr("10"), decimal.Zero)
	f.inv.readErr[bad] = errors.New("read timeout")
	f.recipe.lines[item] = []model.RecipeLine{
		{MenuItemID: item, InventoryItemID: bad, Quantity: dec("1")},
		{MenuItemID: item, InventoryItemID: good, Quantity: dec("1")},
	}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err)
	assert.False(t, result.Decrements[0].Applied)
	assert.Equal(t, "read failed", result.Decrements[0].SkipReason)
	assert.True(t, result.Decrements[1].Applied)
}

func TestReduceStockMenuLookupFailure(t *testing.T) {
	f := newFixture()
	f.menu.err = errors.New("db down")

	_, err := f.svc.ReduceStock(context.Background(), uuid.New(), dec("1"))
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "menu item", lookupErr.Entity)
}

func TestReduceStockProductTypeDefaultsToIndividual(t *testing.T) {
	f := newFixture()
	item := f.addMenuItem("") // legacy row predating the column
	ing := f.addInventory(decPtr("5"), decimal.Zero)
	f.recipe.lines[item] = []model.RecipeLine{{MenuItemID: item, InventoryItemID: ing, Quantity: dec("1")}}

	result, err := f.svc.ReduceStock(context.Background(), item, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, model.ProductTypeIndividual, result.ProductType)
}

// ── Manual adjustments ───────────────────────────────────────────────────────

func TestAdjustStockRecordsMovement(t *testing.T) {
	f := newFixture()
	id := f.addInventory(decPtr("10"), decimal.Zero)

	resp, err := f.svc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{
		Delta:  dec("-4"),
		Reason: "spoiled batch",
	}, "ana")
	require.NoError(t, err)
	assert.True(t, resp.PreviousStock.Equal(dec("10")))
	assert.True(t, resp.NewStock.Equal(dec("6")))

	require.Len(t, f.mov.movements, 1)
	mov := f.mov.movements[0]
	assert.Equal(t, "manual_adjust", mov.Kind)
	assert.Equal(t, "ana", mov.CreatedByUser)
	assert.True(t, mov.StockBefore.Equal(dec("10")))
	assert.True(t, mov.StockAfter.Equal(dec("6")))
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	f := newFixture()
	id := f.addInventory(decPtr("3"), decimal.Zero)

	resp, err := f.svc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{
		Delta:  dec("-8"),
		Reason: "inventory recount",
	}, "ana")
	require.NoError(t, err)
	assert.True(t, resp.NewStock.IsZero())
}
