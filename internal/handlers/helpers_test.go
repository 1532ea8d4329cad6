package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", models.ErrInvalidInput, http.StatusBadRequest},
		{"no agreed price", models.ErrNoAgreedPrice, http.StatusBadRequest},
		{"missing after photo", models.ErrMissingAfterPhoto, http.StatusBadRequest},
		{"bad credentials", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"job not found", models.ErrJobNotFound, http.StatusNotFound},
		{"profile not found", models.ErrProfileNotFound, http.StatusNotFound},
		{"duplicate email", models.ErrDuplicateEmail, http.StatusConflict},
		{"already applied", models.ErrAlreadyApplied, http.StatusConflict},
		{"already reviewed", models.ErrAlreadyReviewed, http.StatusConflict},
		{"job not open", models.ErrJobNotOpen, http.StatusConflict},
		{"invalid transition", models.ErrInvalidTransition, http.StatusConflict},
		{"cleaner not onboarded", models.ErrCleanerNotOnboarded, http.StatusUnprocessableEntity},
		{"stripe down", models.ErrExternalService, http.StatusBadGateway},
		{"unknown", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondError(rr, tt.err)
			if rr.Code != tt.want {
				t.Fatalf("got status %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestPathInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/jobs/7?:id=7", nil)
	id, err := pathInt(r, "id")
	if err != nil {
		t.Fatalf("pathInt: %v", err)
	}
	if id != 7 {
		t.Fatalf("got %d, want 7", id)
	}

	r = httptest.NewRequest(http.MethodGet, "/jobs/x?:id=x", nil)
	if _, err := pathInt(r, "id"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
