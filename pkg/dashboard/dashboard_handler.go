package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type SummaryDTO struct {
	IncomeTotal           decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal          decimal.Decimal `json:"expenseTotal"`
	SavingsTotal          decimal.Decimal `json:"savingsTotal"`
	AutomatedSavingsTotal decimal.Decimal `json:"automatedSavingsTotal"`
	UnallocatedSavings    decimal.Decimal `json:"unallocatedSavings"`

	SpentToday      decimal.Decimal `json:"spentToday"`
	SpentYesterday  decimal.Decimal `json:"spentYesterday"`
	SpentLast30Days decimal.Decimal `json:"spentLast30Days"`

	IncomeSeries  []DailyPointDTO `json:"incomeSeries"`
	ExpenseSeries []DailyPointDTO `json:"expenseSeries"`

	CategoryBreakdown   []CategoryTotalDTO `json:"categoryBreakdown"`
	RecentTransactions  []TransactionDTO   `json:"recentTransactions"`
	ActivePockets       []PocketGroupDTO   `json:"activePockets"`
	IncompleteReminders []ReminderDTO      `json:"incompleteReminders"`
}

type DailyPointDTO struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type TransactionDTO struct {
	Type       string          `json:"type"`
	ID         int             `json:"id"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type PocketDTO struct {
	ID          int             `json:"id"`
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
}

type PocketGroupDTO struct {
	Period  string      `json:"period"`
	Pockets []PocketDTO `json:"pockets"`
}

type ReminderDTO struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message,omitempty"`
	ReminderDate time.Time `json:"reminderDate"`
}

type Handler struct {
	dashboardService Service
}

func NewHandler(dashboardService Service) *Handler {
	return &Handler{dashboardService: dashboardService}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(summary Summary) SummaryDTO {
	dto := SummaryDTO{
		IncomeTotal:           summary.IncomeTotal,
		ExpenseTotal:          summary.ExpenseTotal,
		SavingsTotal:          summary.SavingsTotal,
		AutomatedSavingsTotal: summary.AutomatedSavingsTotal,
		UnallocatedSavings:    summary.UnallocatedSavings,
		SpentToday:            summary.SpentToday,
		SpentYesterday:        summary.SpentYesterday,
		SpentLast30Days:       summary.SpentLast30Days,
		IncomeSeries:          make([]DailyPointDTO, 0, len(summary.IncomeSeries)),
		ExpenseSeries:         make([]DailyPointDTO, 0, len(summary.ExpenseSeries)),
		CategoryBreakdown:     make([]CategoryTotalDTO, 0, len(summary.CategoryBreakdown)),
		RecentTransactions:    make([]TransactionDTO, 0, len(summary.RecentTransactions)),
		ActivePockets:         make([]PocketGroupDTO, 0, len(summary.ActivePockets)),
		IncompleteReminders:   make([]ReminderDTO, 0, len(summary.IncompleteReminders)),
	}

	for _, point := range summary.IncomeSeries {
		dto.IncomeSeries = append(dto.IncomeSeries, DailyPointDTO{Date: point.Date.Format("2006-01-02"), Total: point.Total})
	}
	for _, point := range summary.ExpenseSeries {
		dto.ExpenseSeries = append(dto.ExpenseSeries, DailyPointDTO{Date: point.Date.Format("2006-01-02"), Total: point.Total})
	}
	for _, total := range summary.CategoryBreakdown {
		dto.CategoryBreakdown = append(dto.CategoryBreakdown, CategoryTotalDTO{Category: total.Category, Total: total.Total})
	}
	for _, transaction := range summary.RecentTransactions {
		dto.RecentTransactions = append(dto.RecentTransactions, TransactionDTO{
			Type:       string(transaction.Type),
			ID:         transaction.ID,
			Label:      transaction.Label,
			Amount:     transaction.Amount,
			OccurredAt: transaction.OccurredAt,
		})
	}
	for _, group := range summary.ActivePockets {
		groupDTO := PocketGroupDTO{Period: string(group.Period), Pockets: make([]PocketDTO, 0, len(group.Pockets))}
		for _, pocket := range group.Pockets {
			groupDTO.Pockets = append(groupDTO.Pockets, PocketDTO{
				ID:          pocket.ID,
				Category:    pocket.Category,
				LimitAmount: pocket.LimitAmount,
				Spent:       pocket.Spent,
				Remaining:   pocket.Remaining,
			})
		}
		dto.ActivePockets = append(dto.ActivePockets, groupDTO)
	}
	for _, r := range summary.IncompleteReminders {
		dto.IncompleteReminders = append(dto.IncompleteReminders, ReminderDTO{
			ID:           r.ID,
			Title:        r.Title,
			Message:      r.Message,
			ReminderDate: r.ReminderDate,
		})
	}
	return dto
}
