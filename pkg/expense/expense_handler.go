package expense

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

type ExpenseDTO struct {
	ID            int             `json:"id"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	SourceType    string          `json:"sourceType,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Description   string          `json:"description,omitempty"`
}

type Handler struct {
	expenseService Service
}

func NewHandler(expenseService Service) *Handler {
	return &Handler{expenseService: expenseService}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	expenses, err := h.expenseService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, ExpenseToDTO(expense))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new expense")
	w.Header().Set("Content-Type", "application/json")

	dto, ok := decodeExpense(w, r)
	if !ok {
		return
	}

	created, err := h.expenseService.Create(r.Context(), DTOToExpense(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	expenseId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dto, ok := decodeExpense(w, r)
	if !ok {
		return
	}
	if dto.ID == 0 || dto.ID != expenseId {
		http.Error(w, "Invalid expense id in request body", http.StatusBadRequest)
		return
	}

	updated, err := h.expenseService.Update(r.Context(), DTOToExpense(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	expenseId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.expenseService.Delete(r.Context(), expenseId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeExpense(w http.ResponseWriter, r *http.Request) (ExpenseDTO, bool) {
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return ExpenseDTO{}, false
	}
	if dto.Category == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Category is required"})
		return ExpenseDTO{}, false
	}
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Amount must be positive"})
		return ExpenseDTO{}, false
	}
	if dto.OccurredAt.IsZero() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "OccurredAt is required"})
		return ExpenseDTO{}, false
	}
	if dto.SourceType != "" && !SourceType(dto.SourceType).IsValid() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid sourceType",
			Details: "sourceType must be Income or Savings",
		})
		return ExpenseDTO{}, false
	}
	return dto, true
}

func ExpenseToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:            expense.ID,
		Category:      expense.Category,
		PaymentMethod: expense.PaymentMethod,
		SourceType:    string(expense.SourceType),
		Amount:        expense.Amount,
		OccurredAt:    expense.OccurredAt,
		Description:   expense.Description,
	}
}

func DTOToExpense(dto ExpenseDTO) Expense {
	return Expense{
		ID:            dto.ID,
		Category:      dto.Category,
		PaymentMethod: dto.PaymentMethod,
		SourceType:    SourceType(dto.SourceType),
		Amount:        dto.Amount,
		OccurredAt:    dto.OccurredAt,
		Description:   dto.Description,
	}
}
