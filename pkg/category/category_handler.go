package category

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

type Handler struct {
	categoryService Service
}

func NewHandler(categoryService Service) *Handler {
	return &Handler{categoryService: categoryService}
}

func (h *Handler) ListByKind(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	kind := Kind(r.URL.Query().Get("kind"))
	if !kind.IsValid() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid kind",
			Details: "kind must be income, expense or payment_method",
		})
		return
	}

	categories, err := h.categoryService.ListByKind(r.Context(), kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, toDTO(category))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")
	w.Header().Set("Content-Type", "application/json")

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	kind := Kind(dto.Kind)
	if !kind.IsValid() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid kind",
			Details: "kind must be income, expense or payment_method",
		})
		return
	}
	if dto.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Name is required"})
		return
	}

	created, err := h.categoryService.Create(r.Context(), Category{Kind: kind, Name: dto.Name})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	categoryId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.categoryService.Delete(r.Context(), categoryId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(category Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Kind:      string(category.Kind),
		Name:      category.Name,
		IsDefault: category.IsDefault,
	}
}
