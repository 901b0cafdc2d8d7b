package handlers

import (
	"net/http"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	exercises, err := h.exercises.List(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *Handler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	var in models.ExerciseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	exercise, err := h.exercises.Create(r.Context(), identity.ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *Handler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	var in models.ExerciseInput
	if !decodeJSON(w, r, &in) {
		return
	}
	exercise, err := h.exercises.Update(r.Context(), identity.ID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *Handler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.exercises.Delete(r.Context(), identity.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Exercise deleted successfully"})
}
