package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brigadepos/internal/dto"
	"brigadepos/internal/middleware"
	"brigadepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

type stubInventoryService struct {
	result *service.ReduceResult
	err    error

	gotProductID uuid.UUID
	gotQuantity  decimal.Decimal
}

func (s *stubInventoryService) ReduceStock(_ context.Context, productID uuid.UUID, quantity decimal.Decimal) (*service.ReduceResult, error) {
	s.gotProductID = productID
	s.gotQuantity = quantity
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubInventoryService) ListItems(_ context.Context) ([]dto.InventoryItemResponse, error) {
	return nil, nil
}

func (s *stubInventoryService) AdjustStock(_ context.Context, _ uuid.UUID, _ dto.AdjustStockRequest, _ string) (*dto.AdjustStockResponse, error) {
	return nil, nil
}

func (s *stubInventoryService) ListMovements(_ context.Context, _ dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	return nil, nil
}

func newTestRouter(svc service.InventoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS())
	h := NewInventoryHandler(svc)
	v1 := r.Group("/v1", middleware.JWTAuth(testSecret))
	v1.POST("/inventory/reduce", middleware.RequireRole("staff", "manager", "admin"), h.ReduceStock)
	return r
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := &middleware.JWTClaims{
		UserID:   uuid.NewString(),
		Username: "waiter1",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doReduce(r *gin.Engine, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/inventory/reduce", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestReduceStockPreflight(t *testing.T) {
	r := newTestRouter(&stubInventoryService{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/inventory/reduce", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestReduceStockMissingAuthHeader(t *testing.T) {
	r := newTestRouter(&stubInventoryService{})

	w := doReduce(r, `{"product_id":"x","quantity":1}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing authorization header", errBody(t, w))
}

func TestReduceStockInvalidToken(t *testing.T) {
	r := newTestRouter(&stubInventoryService{})

	w := doReduce(r, `{"product_id":"x","quantity":1}`, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errBody(t, w))
}

func TestReduceStockExpiredToken(t *testing.T) {
	r := newTestRouter(&stubInventoryService{})

	claims := &middleware.JWTClaims{
		Role: "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doReduce(r, `{"product_id":"x","quantity":1}`, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errBody(t, w))
}

func TestReduceStockValidation(t *testing.T) {
	r := newTestRouter(&stubInventoryService{})
	token := signToken(t, "staff")

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing product_id", `{"quantity":2}`},
		{"missing quantity", `{"product_id":"` + uuid.NewString() + `"}`},
		{"zero quantity", `{"product_id":"` + uuid.NewString() + `","quantity":0}`},
		{"negative quantity", `{"product_id":"` + uuid.NewString() + `","quantity":-1}`},
		{"non-uuid product_id", `{"product_id":"burger","quantity":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doReduce(r, tc.body, token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing required fields", errBody(t, w))
		})
	}
}

func TestReduceStockNoConsumptionData(t *testing.T) {
	r := newTestRouter(&stubInventoryService{err: service.ErrNoConsumptionData})
	token := signToken(t, "staff")

	w := doReduce(r, `{"product_id":"`+uuid.NewString()+`","quantity":1}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No recipe or ingredients found for this product", errBody(t, w))
}

func TestReduceStockRecipeEnvelope(t *testing.T) {
	bun := uuid.New()
	svc := &stubInventoryService{result: &service.ReduceResult{
		ProductType: "combo",
		Decrements: []service.StockDecrement{
			{
				InventoryItemID: bun,
				PreviousStock:   decimal.NewFromInt(10),
				NewStock:        decimal.NewFromInt(7),
				Reduction:       decimal.NewFromInt(3),
				HasReduction:    true,
				Applied:         true,
			},
			// A skipped decrement must not appear in the wire results.
			{InventoryItemID: uuid.New(), SkipReason: "write failed"},
		},
	}}
	r := newTestRouter(svc)
	token := signToken(t, "manager")
	productID := uuid.NewString()

	w := doReduce(r, `{"product_id":"`+productID+`","quantity":3}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, productID, svc.gotProductID.String())
	assert.True(t, svc.gotQuantity.Equal(decimal.NewFromInt(3)))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "combo", resp["product_type"])
	assert.NotContains(t, resp, "message")

	results := resp["results"].([]any)
	require.Len(t, results, 1)
	entry := results[0].(map[string]any)
	assert.Equal(t, bun.String(), entry["inventory_item_id"])
	assert.Equal(t, "10", entry["previous_stock"])
	assert.Equal(t, "7", entry["new_stock"])
	assert.Equal(t, "3", entry["reduction"])
}

func TestReduceStockFallbackEnvelope(t *testing.T) {
	svc := &stubInventoryService{result: &service.ReduceResult{
		ProductType:  "individual",
		FallbackUsed: true,
		Decrements: []service.StockDecrement{
			{
				InventoryItemID: uuid.New(),
				PreviousStock:   decimal.NewFromInt(5),
				NewStock:        decimal.NewFromInt(3),
				Applied:         true,
			},
		},
	}}
	r := newTestRouter(svc)
	token := signToken(t, "staff")

	w := doReduce(r, `{"product_id":"`+uuid.NewString()+`","quantity":2}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Stock reduced via ingredient links (no recipe found)", resp["message"])
	assert.NotContains(t, resp, "product_type")

	results := resp["results"].([]any)
	require.Len(t, results, 1)
	entry := results[0].(map[string]any)
	assert.NotContains(t, entry, "reduction")
}

func TestReduceStockLookupFailure(t *testing.T) {
	r := newTestRouter(&stubInventoryService{err: &service.LookupError{Entity: "menu item"}})
	token := signToken(t, "staff")

	w := doReduce(r, `{"product_id":"`+uuid.NewString()+`","quantity":1}`, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "menu item lookup failed", errBody(t, w))
}
