package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// ReportRenderer turns a report into a downloadable document.
type ReportRenderer interface {
	Render(report Report, w io.Writer) error
}

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(report Report, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Financial Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on %s", report.GeneratedAt.Format("2006-01-02")), "", 1, "C", false, 0, "")
	if report.From != nil || report.To != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s", formatBound(report.From, "beginning"), formatBound(report.To, "present")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, "Total Income", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, report.IncomeTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(60, 6, "Total Expenses", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, report.ExpenseTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(60, 6, "Net Savings", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, report.NetSavings.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	if len(report.CategoryTotals) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Expenses by Category", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, total := range report.CategoryTotals {
			pdf.CellFormat(60, 6, total.Category, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, total.Total.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(report.Expenses) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Expense Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 6, "Date", "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, "Category", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, "Payment Method", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, "Amount", "1", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, e := range report.Expenses {
			pdf.CellFormat(30, 6, e.OccurredAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, e.Category, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, e.PaymentMethod, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, e.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
		}
	}

	return pdf.Output(w)
}

func formatBound(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("2006-01-02")
}
