package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/services"
)

type CleanerProfileHandler struct {
	Service *services.CleanerProfileService
}

func (h *CleanerProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	profile, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	// Stripe identifiers are between us and the profile owner.
	if callerID(r) != userID && callerRole(r) != models.RoleAdmin {
		profile.StripeAccountID = nil
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *CleanerProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCleanerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	profile, err := h.Service.UpdateProfile(r.Context(), callerID(r), callerRole(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
