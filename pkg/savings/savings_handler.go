package savings

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

type SavingsDTO struct {
	ID          int             `json:"id"`
	IncomeId    int             `json:"incomeId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	IsAutomatic bool            `json:"isAutomatic"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	all, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]SavingsDTO, 0, len(all))
	for _, s := range all {
		dtos = append(dtos, toDTO(s))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateManual(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating manual savings entry")
	w.Header().Set("Content-Type", "application/json")

	var dto SavingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Amount must be positive"})
		return
	}
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "date must be in YYYY-MM-DD format",
		})
		return
	}

	created, err := h.service.CreateManual(r.Context(), Savings{
		Amount:      dto.Amount,
		Date:        date,
		Description: dto.Description,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteManual(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	savingsId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.DeleteManual(r.Context(), savingsId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Savings entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(s Savings) SavingsDTO {
	return SavingsDTO{
		ID:          s.ID,
		IncomeId:    s.IncomeId,
		Amount:      s.Amount,
		Date:        s.Date.Format("2006-01-02"),
		Description: s.Description,
		IsAutomatic: s.IsAutomatic,
	}
}
