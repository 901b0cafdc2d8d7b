package handlers

import (
	"net/http"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListFoods(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	foods, err := h.foods.List(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *Handler) CreateFood(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	var in models.FoodInput
	if !decodeJSON(w, r, &in) {
		return
	}
	food, err := h.foods.Create(r.Context(), identity.ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	var in models.FoodInput
	if !decodeJSON(w, r, &in) {
		return
	}
	food, err := h.foods.Update(r.Context(), identity.ID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *Handler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.foods.Delete(r.Context(), identity.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Food deleted successfully"})
}
