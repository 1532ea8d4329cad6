package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(":" + name))
	if err != nil || v <= 0 {
		return 0, models.ErrInvalidInput
	}
	return v, nil
}

// Middleware puts the authenticated identity in the request context under
// these keys.
func callerID(r *http.Request) int {
	id, _ := r.Context().Value("user_id").(int)
	return id
}

func callerRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// respondError translates the service sentinels to HTTP statuses. Anything
// unmapped is a 500 and gets logged; mapped errors are expected outcomes and
// are not.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrNoAgreedPrice),
		errors.Is(err, models.ErrMissingAfterPhoto):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrUnauthorized):
		errorJSON(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		errorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNoRecord),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrJobNotFound),
		errors.Is(err, models.ErrApplicationNotFound),
		errors.Is(err, models.ErrProfileNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrAlreadyApplied),
		errors.Is(err, models.ErrAlreadyReviewed),
		errors.Is(err, models.ErrJobNotOpen),
		errors.Is(err, models.ErrJobNotDisputed),
		errors.Is(err, models.ErrJobNotPaid),
		errors.Is(err, models.ErrInvalidTransition):
		errorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrCleanerNotOnboarded):
		errorJSON(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrExternalService):
		errorJSON(w, http.StatusBadGateway, err.Error())
	default:
		log.Printf("unhandled error: %v", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
