package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ckinger23/flock-and-fur/internal/services"
)

type JobApplicationHandler struct {
	Service *services.JobApplicationService
}

func (h *JobApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathInt(r, "job_id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	var body struct {
		Message       *string          `json:"message"`
		ProposedPrice *decimal.Decimal `json:"proposed_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	app, err := h.Service.Apply(r.Context(), jobID, callerID(r), callerRole(r), body.Message, body.ProposedPrice)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *JobApplicationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}
	job, err := h.Service.Accept(r.Context(), id, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Withdraw(r.Context(), id, callerID(r)); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *JobApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathInt(r, "job_id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	apps, err := h.Service.ListByJob(r.Context(), jobID, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *JobApplicationHandler) ListByCleaner(w http.ResponseWriter, r *http.Request) {
	cleanerID, err := pathInt(r, "cleaner_id")
	if err != nil {
		http.Error(w, "Invalid cleaner ID", http.StatusBadRequest)
		return
	}
	apps, err := h.Service.ListByCleaner(r.Context(), cleanerID, callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}
