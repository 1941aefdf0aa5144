package reminder

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ReminderDTO struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message,omitempty"`
	ReminderDate time.Time `json:"reminderDate"`
	IsCompleted  bool      `json:"isCompleted"`
	EmailSent    bool      `json:"emailSent"`
}

type Handler struct {
	reminderService Service
	dispatcher      *Dispatcher
}

func NewHandler(reminderService Service, dispatcher *Dispatcher) *Handler {
	return &Handler{reminderService: reminderService, dispatcher: dispatcher}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	reminders, err := h.reminderService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ReminderDTO, 0, len(reminders))
	for _, reminder := range reminders {
		dtos = append(dtos, toDTO(reminder))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new reminder")
	w.Header().Set("Content-Type", "application/json")

	dto, ok := decodeReminder(w, r)
	if !ok {
		return
	}

	created, err := h.reminderService.Create(r.Context(), fromDTO(dto))
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
	reminderId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dto, ok := decodeReminder(w, r)
	if !ok {
		return
	}
	dto.ID = reminderId

	updated, err := h.reminderService.Update(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	reminderId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.reminderService.Delete(r.Context(), reminderId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	reminderId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.reminderService.Complete(r.Context(), reminderId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dispatch triggers a dispatch run on demand, outside the scheduler tick.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sent, err := h.dispatcher.DispatchDue(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(map[string]int{"sent": sent}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func decodeReminder(w http.ResponseWriter, r *http.Request) (ReminderDTO, bool) {
	var dto ReminderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return ReminderDTO{}, false
	}
	if dto.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Title is required"})
		return ReminderDTO{}, false
	}
	if dto.ReminderDate.IsZero() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "ReminderDate is required"})
		return ReminderDTO{}, false
	}
	return dto, true
}

func toDTO(reminder Reminder) ReminderDTO {
	return ReminderDTO{
		ID:           reminder.ID,
		Title:        reminder.Title,
		Message:      reminder.Message,
		ReminderDate: reminder.ReminderDate,
		IsCompleted:  reminder.IsCompleted,
		EmailSent:    reminder.EmailSent,
	}
}

func fromDTO(dto ReminderDTO) Reminder {
	return Reminder{
		ID:           dto.ID,
		Title:        dto.Title,
		Message:      dto.Message,
		ReminderDate: dto.ReminderDate,
		IsCompleted:  dto.IsCompleted,
		EmailSent:    dto.EmailSent,
	}
}
