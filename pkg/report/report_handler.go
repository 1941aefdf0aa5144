package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ReportDTO struct {
	GeneratedAt    string             `json:"generatedAt"`
	From           string             `json:"from,omitempty"`
	To             string             `json:"to,omitempty"`
	IncomeTotal    decimal.Decimal    `json:"incomeTotal"`
	ExpenseTotal   decimal.Decimal    `json:"expenseTotal"`
	NetSavings     decimal.Decimal    `json:"netSavings"`
	CategoryTotals []CategoryTotalDTO `json:"categoryTotals"`
	Expenses       []ExpenseLineDTO   `json:"expenses"`
}

type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type ExpenseLineDTO struct {
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
}

type Handler struct {
	reportService Service
	renderer      ReportRenderer
}

func NewHandler(reportService Service, renderer ReportRenderer) *Handler {
	return &Handler{reportService: reportService, renderer: renderer}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, to := parseRange(r)
	report, err := h.reportService.GetReport(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	from, to := parseRange(r)
	report, err := h.reportService.GetReport(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("financial_report_%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.renderer.Render(report, w); err != nil {
		log.Errorf("Failed to render report: %v", err)
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
	}
}

// parseRange reads the optional startDate and endDate query parameters. An
// unparseable value is ignored, leaving that bound open. The end date is
// inclusive at day granularity.
func parseRange(r *http.Request) (*time.Time, *time.Time) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = &parsed
		} else {
			log.Debugf("ignoring invalid startDate %q", raw)
		}
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			end := parsed.AddDate(0, 0, 1)
			to = &end
		} else {
			log.Debugf("ignoring invalid endDate %q", raw)
		}
	}
	return from, to
}

func toDTO(report Report) ReportDTO {
	dto := ReportDTO{
		GeneratedAt:    report.GeneratedAt.Format("2006-01-02"),
		IncomeTotal:    report.IncomeTotal,
		ExpenseTotal:   report.ExpenseTotal,
		NetSavings:     report.NetSavings,
		CategoryTotals: make([]CategoryTotalDTO, 0, len(report.CategoryTotals)),
		Expenses:       make([]ExpenseLineDTO, 0, len(report.Expenses)),
	}
	if report.From != nil {
		dto.From = report.From.Format("2006-01-02")
	}
	if report.To != nil {
		dto.To = report.To.AddDate(0, 0, -1).Format("2006-01-02")
	}
	for _, total := range report.CategoryTotals {
		dto.CategoryTotals = append(dto.CategoryTotals, CategoryTotalDTO{Category: total.Category, Total: total.Total})
	}
	for _, e := range report.Expenses {
		dto.Expenses = append(dto.Expenses, expenseLine(e))
	}
	return dto
}

func expenseLine(e expense.Expense) ExpenseLineDTO {
	return ExpenseLineDTO{
		Date:          e.OccurredAt.Format("2006-01-02"),
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Amount:        e.Amount,
	}
}
