package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var rev models.Review
	if err := json.NewDecoder(r.Body).Decode(&rev); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	rev.ReviewerID = callerID(r)
	created, err := h.Service.CreateReview(r.Context(), rev)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) ListByReviewee(w http.ResponseWriter, r *http.Request) {
	revieweeID, err := pathInt(r, "user_id")
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	reviews, err := h.Service.ListByReviewee(r.Context(), revieweeID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	rating, err := h.Service.GetUserRating(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}
