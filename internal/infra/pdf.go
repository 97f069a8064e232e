package infra

// pdf.go — sales report export using go-pdf/fpdf.
// Renders the per-day sales aggregate as an A4 table:
//   - Title and date range header
//   - Day / orders / revenue rows
//   - Bold totals line
// The output file is saved to storagePath/sales_{from}_{to}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"brigadepos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateSalesReportPDF writes the sales report to a PDF file and returns
// the absolute path. storagePath is created if needed.
func GenerateSalesReportPDF(report *dto.SalesReportResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("sales_%s_%s.pdf", report.From, report.To)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s to %s", report.From, report.To), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // day
	col2 := contentW * 0.25 // orders
	col3 := contentW * 0.35 // revenue

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Day", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Orders", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Revenue", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range report.Points {
		pdf.CellFormat(col1, 6, p.Day, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", p.Orders), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+p.Revenue.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 7, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, fmt.Sprintf("%d", report.Orders), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+report.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2, 6, "Average per day:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+report.AvgDay.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
