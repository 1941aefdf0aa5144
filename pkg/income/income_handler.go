package income

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

type IncomeDTO struct {
	ID          int             `json:"id"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Description string          `json:"description,omitempty"`
}

type Handler struct {
	incomeService Service
}

func NewHandler(incomeService Service) *Handler {
	return &Handler{incomeService: incomeService}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	incomes, err := h.incomeService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]IncomeDTO, 0, len(incomes))
	for _, income := range incomes {
		dtos = append(dtos, IncomeToDTO(income))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new income")
	w.Header().Set("Content-Type", "application/json")

	dto, ok := decodeIncome(w, r)
	if !ok {
		return
	}

	created, err := h.incomeService.Create(r.Context(), DTOToIncome(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(IncomeToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	incomeId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dto, ok := decodeIncome(w, r)
	if !ok {
		return
	}
	if dto.ID == 0 || dto.ID != incomeId {
		http.Error(w, "Invalid income id in request body", http.StatusBadRequest)
		return
	}

	updated, err := h.incomeService.Update(r.Context(), DTOToIncome(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Income not found", http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	incomeId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.incomeService.Delete(r.Context(), incomeId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Income not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeIncome(w http.ResponseWriter, r *http.Request) (IncomeDTO, bool) {
	var dto IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return IncomeDTO{}, false
	}
	if dto.Source == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Source is required"})
		return IncomeDTO{}, false
	}
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Amount must be positive"})
		return IncomeDTO{}, false
	}
	if dto.OccurredAt.IsZero() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "OccurredAt is required"})
		return IncomeDTO{}, false
	}
	return dto, true
}

func IncomeToDTO(income Income) IncomeDTO {
	return IncomeDTO{
		ID:          income.ID,
		Source:      income.Source,
		Amount:      income.Amount,
		OccurredAt:  income.OccurredAt,
		Description: income.Description,
	}
}

func DTOToIncome(dto IncomeDTO) Income {
	return Income{
		ID:          dto.ID,
		Source:      dto.Source,
		Amount:      dto.Amount,
		OccurredAt:  dto.OccurredAt,
		Description: dto.Description,
	}
}
