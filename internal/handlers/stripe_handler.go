package handlers

import (
	"io"
	"net/http"

	"github.com/ckinger23/flock-and-fur/internal/services"
)

type StripeHandler struct {
	Service *services.StripeService
}

func (h *StripeHandler) ConnectAccount(w http.ResponseWriter, r *http.Request) {
	url, err := h.Service.ConnectAccount(r.Context(), callerID(r), callerRole(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"onboarding_url": url})
}

func (h *StripeHandler) AccountStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.AccountStatus(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *StripeHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathInt(r, "job_id")
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	url, err := h.Service.CreateCheckout(r.Context(), jobID, callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}

// Webhook needs the raw body for signature verification, so no JSON decoding
// happens before ConstructEvent.
func (h *StripeHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	const maxBody = 65536
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusServiceUnavailable)
		return
	}
	if err := h.Service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
