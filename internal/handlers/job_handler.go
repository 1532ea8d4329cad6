package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/services"
)

type JobHandler struct {
	Service *services.JobService
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	job, err := h.Service.CreateJob(r.Context(), callerID(r), callerRole(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	job, err := h.Service.GetJob(r.Context(), id, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListOpenJobs(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) ListJobsByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathInt(r, "client_id")
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}
	jobs, err := h.Service.ListJobsByClient(r.Context(), clientID, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) ListJobsByCleaner(w http.ResponseWriter, r *http.Request) {
	cleanerID, err := pathInt(r, "cleaner_id")
	if err != nil {
		http.Error(w, "Invalid cleaner ID", http.StatusBadRequest)
		return
	}
	jobs, err := h.Service.ListJobsByCleaner(r.Context(), cleanerID, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) ListJobsByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get(":status")
	jobs, err := h.Service.ListJobsByStatus(r.Context(), callerRole(r), status)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) CountJobsByStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.CountJobsByStatus(r.Context(), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	job, err := h.Service.UpdateStatus(r.Context(), id, callerID(r), callerRole(r), body.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
