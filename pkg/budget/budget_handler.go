package budget

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	ID          int             `json:"id"`
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	Period      string          `json:"period"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
}

type Handler struct {
	budgetService Service
}

func NewHandler(budgetService Service) *Handler {
	return &Handler{budgetService: budgetService}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgets, err := h.budgetService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, toDTO(budget))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")

	budget, ok := decodeBudget(w, r)
	if !ok {
		return
	}

	created, err := h.budgetService.Create(r.Context(), budget)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	budgetId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, ok := decodeBudget(w, r)
	if !ok {
		return
	}
	budget.ID = budgetId

	updated, err := h.budgetService.Update(r.Context(), budget)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(budget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	budgetId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.budgetService.Delete(r.Context(), budgetId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBudget(w http.ResponseWriter, r *http.Request) (Budget, bool) {
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return Budget{}, false
	}
	if dto.Category == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Category is required"})
		return Budget{}, false
	}
	if dto.LimitAmount.LessThanOrEqual(decimal.Zero) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "LimitAmount must be positive"})
		return Budget{}, false
	}
	period := Period(dto.Period)
	if dto.Period == "" {
		period = PeriodMonthly
	}
	if !period.IsValid() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid period",
			Details: "period must be Weekly or Monthly",
		})
		return Budget{}, false
	}

	budget := Budget{
		ID:          dto.ID,
		Category:    dto.Category,
		LimitAmount: dto.LimitAmount,
		Period:      period,
	}
	if dto.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", dto.StartDate)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "startDate must be in YYYY-MM-DD format",
			})
			return Budget{}, false
		}
		budget.StartDate = startDate
	}
	if dto.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", dto.EndDate)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "endDate must be in YYYY-MM-DD format",
			})
			return Budget{}, false
		}
		budget.EndDate = endDate
	}
	return budget, true
}

func toDTO(budget Budget) BudgetDTO {
	dto := BudgetDTO{
		ID:          budget.ID,
		Category:    budget.Category,
		LimitAmount: budget.LimitAmount,
		Period:      string(budget.Period),
	}
	if !budget.StartDate.IsZero() {
		dto.StartDate = budget.StartDate.Format("2006-01-02")
	}
	if !budget.EndDate.IsZero() {
		dto.EndDate = budget.EndDate.Format("2006-01-02")
	}
	return dto
}
