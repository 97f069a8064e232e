package handler

import (
	"errors"
	"net/http"

	"brigadepos/internal/apierror"
	"brigadepos/internal/dto"
	"brigadepos/internal/middleware"
	"brigadepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ReduceStock godoc
// @Summary      Reduce inventory for a sold menu item
// @Description  Resolves the item's recipe (or legacy ingredient links) and applies floored stock decrements, returning a per-ingredient audit trail. Per-ingredient failures are skipped, not fatal.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReduceStockRequest true "Sold product and quantity"
// @Success      200  {object} dto.ReduceStockResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/inventory/reduce [post]
func (h *InventoryHandler) ReduceStock(c *gin.Context) {
	var req dto.ReduceStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing required fields"))
		return
	}
	if req.ProductID == "" || !req.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, apierror.New("Missing required fields"))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing required fields"))
		return
	}

	result, err := h.svc.ReduceStock(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		var lookupErr *service.LookupError
		switch {
		case errors.Is(err, service.ErrNoConsumptionData):
			c.JSON(http.StatusNotFound, apierror.New("No recipe or ingredients found for this product"))
		case errors.As(err, &lookupErr):
			c.JSON(http.StatusInternalServerError, apierror.New(lookupErr.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
		}
		return
	}

	resp := dto.ReduceStockResponse{
		Success: true,
		Results: make([]dto.DecrementResult, 0, len(result.Decrements)),
	}
	// Skipped decrements are not serialized — the contract is a shorter
	// results list, not a partial-failure status.
	for _, d := range result.Decrements {
		if !d.Applied {
			continue
		}
		entry := dto.DecrementResult{
			InventoryItemID: d.InventoryItemID.String(),
			PreviousStock:   d.PreviousStock,
			NewStock:        d.NewStock,
		}
		if d.HasReduction {
			reduction := d.Reduction
			entry.Reduction = &reduction
		}
		resp.Results = append(resp.Results, entry)
	}
	if result.FallbackUsed {
		resp.Message = "Stock reduced via ingredient links (no recipe found)"
	} else {
		resp.ProductType = result.ProductType
	}

	c.JSON(http.StatusOK, resp)
}

// List returns all inventory items with their resolved stock and a
// low-stock flag for the dashboard table.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list inventory"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// AdjustStock godoc
// @Summary      Manual stock adjustment
// @Description  Applies a signed delta to an item's stock (floored at zero) and records an audit movement.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Inventory item UUID"
// @Param        body body dto.AdjustStockRequest true "Delta and reason"
// @Success      200  {object} dto.AdjustStockResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/inventory/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req, claims.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Inventory item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to adjust stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements returns the paginated manual movement audit log.
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
