package goal

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

type SavingsGoalDTO struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    string          `json:"targetDate"`
}

type Handler struct {
	goalService Service
}

func NewHandler(goalService Service) *Handler {
	return &Handler{goalService: goalService}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	goals, err := h.goalService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]SavingsGoalDTO, 0, len(goals))
	for _, goal := range goals {
		dtos = append(dtos, toDTO(goal))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new savings goal")
	w.Header().Set("Content-Type", "application/json")

	goal, ok := decodeGoal(w, r)
	if !ok {
		return
	}

	created, err := h.goalService.Create(r.Context(), goal)
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
	goalId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, ok := decodeGoal(w, r)
	if !ok {
		return
	}
	goal.ID = goalId

	updated, err := h.goalService.Update(r.Context(), goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Savings goal not found", http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(goal)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	goalId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.goalService.Delete(r.Context(), goalId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Savings goal not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeGoal(w http.ResponseWriter, r *http.Request) (SavingsGoal, bool) {
	var dto SavingsGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return SavingsGoal{}, false
	}
	if dto.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Name is required"})
		return SavingsGoal{}, false
	}
	if dto.TargetAmount.LessThanOrEqual(decimal.Zero) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "TargetAmount must be positive"})
		return SavingsGoal{}, false
	}
	if dto.CurrentAmount.IsNegative() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "CurrentAmount must not be negative"})
		return SavingsGoal{}, false
	}
	targetDate, err := time.Parse("2006-01-02", dto.TargetDate)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "targetDate must be in YYYY-MM-DD format",
		})
		return SavingsGoal{}, false
	}

	return SavingsGoal{
		ID:            dto.ID,
		Name:          dto.Name,
		TargetAmount:  dto.TargetAmount,
		CurrentAmount: dto.CurrentAmount,
		TargetDate:    targetDate,
	}, true
}

func toDTO(goal SavingsGoal) SavingsGoalDTO {
	return SavingsGoalDTO{
		ID:            goal.ID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate.Format("2006-01-02"),
	}
}
