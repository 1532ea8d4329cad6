package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/services"
)

type DisputeHandler struct {
	Service *services.DisputeService
}

func (h *DisputeHandler) CreateDispute(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathInt(r, "job_id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	job, err := h.Service.CreateDispute(r.Context(), jobID, callerID(r), body.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *DisputeHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathInt(r, "job_id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	var req models.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	job, err := h.Service.ResolveDispute(r.Context(), jobID, callerRole(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
