package handler

import (
	"net/http"

	"brigadepos/internal/apierror"
	"brigadepos/internal/infra"
	"brigadepos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc         service.ReportService
	storagePath string
}

func NewReportsHandler(svc service.ReportService, storagePath string) *ReportsHandler {
	return &ReportsHandler{svc: svc, storagePath: storagePath}
}

// Sales godoc
// @Summary      Per-day sales time series
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD (default: 30 days ago)"
// @Param        to   query string false "YYYY-MM-DD (default: today)"
// @Success      200  {object} dto.SalesReportResponse
// @Router       /v1/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	resp, err := h.svc.Sales(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Expenses returns the per-category expense totals for a month.
func (h *ReportsHandler) Expenses(c *gin.Context) {
	resp, err := h.svc.Expenses(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock returns the items at or below their minimum threshold.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build low stock report"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSales renders the sales report as a PDF and streams it back.
func (h *ReportsHandler) ExportSales(c *gin.Context) {
	report, err := h.svc.Sales(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	path, err := infra.GenerateSalesReportPDF(report, h.storagePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to generate PDF"))
		return
	}
	c.FileAttachment(path, "sales-report.pdf")
}
