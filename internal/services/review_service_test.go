package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

func newReviewService(t *testing.T) (*ReviewService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := &ReviewService{
		ReviewRepo: &repositories.ReviewRepository{DB: db},
		JobRepo:    &repositories.JobRepository{DB: db},
		UserRepo:   &repositories.UserRepository{DB: db},
	}
	return svc, mock, db
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, db := newReviewService(t)
	defer db.Close()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), models.Review{JobID: 7, ReviewerID: 1, RevieweeID: 5, Rating: rating})
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}
}

func TestCreateReviewOnlyPaidJobs(t *testing.T) {
	svc, mock, db := newReviewService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusConfirmed, "90.00"))

	_, err := svc.CreateReview(context.Background(), models.Review{JobID: 7, ReviewerID: 1, RevieweeID: 5, Rating: 5})
	if !errors.Is(err, models.ErrJobNotPaid) {
		t.Fatalf("expected ErrJobNotPaid, got %v", err)
	}
}

func TestCreateReviewOnlyParticipants(t *testing.T) {
	svc, mock, db := newReviewService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusPaid, "90.00"))

	_, err := svc.CreateReview(context.Background(), models.Review{JobID: 7, ReviewerID: 42, RevieweeID: 5, Rating: 4})
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateReviewRevieweeMustBeCounterparty(t *testing.T) {
	svc, mock, db := newReviewService(t)
	defer db.Close()

	// The client reviewing themselves instead of the cleaner.
	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusPaid, "90.00"))

	_, err := svc.CreateReview(context.Background(), models.Review{JobID: 7, ReviewerID: 1, RevieweeID: 1, Rating: 4})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
