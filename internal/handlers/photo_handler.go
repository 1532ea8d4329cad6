package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/services"
)

type PhotoHandler struct {
	Service *services.PhotoService
}

func (h *PhotoHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req models.PresignPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Presign(r.Context(), callerID(r), callerRole(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PhotoHandler) SavePhoto(w http.ResponseWriter, r *http.Request) {
	var req models.SavePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	photo, err := h.Service.SavePhoto(r.Context(), callerID(r), callerRole(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *PhotoHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathInt(r, "job_id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	photos, err := h.Service.ListByJob(r.Context(), jobID, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photos)
}
