package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

var jobTestColumns = []string{
	"id", "client_id", "cleaner_id", "title", "description", "animal_types",
	"enclosure_type", "enclosure_size", "number_of_animals",
	"address", "city", "state", "zip_code",
	"suggested_price", "agreed_price", "platform_fee", "cleaner_payout",
	"status", "dispute_reason", "resolution_type", "resolution_notes",
	"stripe_payment_intent_id",
	"created_at", "updated_at", "completed_at", "confirmed_at", "paid_at",
}

// jobRow builds a result row for the full jobs select. cleanerID may be nil.
func jobRow(id, clientID int, cleanerID any, status string, agreed any) *sqlmock.Rows {
	return sqlmock.NewRows(jobTestColumns).AddRow(
		id, clientID, cleanerID, "Clean the coop", "Six hens, one rooster", []byte(`["chickens"]`),
		models.EnclosureCoop, nil, 7,
		"123 Elm St", "Birmingham", "AL", "35203",
		nil, agreed, nil, nil,
		status, nil, nil, nil,
		nil,
		time.Now(), nil, nil, nil, nil,
	)
}

func expectGetJob(mock sqlmock.Sqlmock, jobID int, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT .+ FROM jobs j WHERE j\.id = \?`).
		WithArgs(jobID).
		WillReturnRows(rows)
}

func newJobService(t *testing.T) (*JobService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := &JobService{
		JobRepo:   &repositories.JobRepository{DB: db},
		PhotoRepo: &repositories.PhotoRepository{DB: db},
		UserRepo:  &repositories.UserRepository{DB: db},
	}
	return svc, mock, db
}

func TestUpdateStatusCompletedNeedsAfterPhoto(t *testing.T) {
	svc, mock, db := newJobService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusInProgress, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM photos WHERE job_id = ? AND type = ?`)).
		WithArgs(7, models.PhotoAfter).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.UpdateStatus(context.Background(), 7, 5, models.RoleCleaner, lifecycle.StatusCompleted)
	if !errors.Is(err, models.ErrMissingAfterPhoto) {
		t.Fatalf("expected ErrMissingAfterPhoto, got %v", err)
	}
}

func TestUpdateStatusCompletedWithPhoto(t *testing.T) {
	svc, mock, db := newJobService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusInProgress, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM photos WHERE job_id = ? AND type = ?`)).
		WithArgs(7, models.PhotoAfter).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE jobs SET status = \?, updated_at = NOW\(\), completed_at = NOW\(\) WHERE id = \?`).
		WithArgs(lifecycle.StatusCompleted, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusCompleted, nil))

	job, err := svc.UpdateStatus(context.Background(), 7, 5, models.RoleCleaner, lifecycle.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if job.Status != lifecycle.StatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusActorGates(t *testing.T) {
	tests := []struct {
		name    string
		actorID int
		role    string
		next    string
	}{
		{"client cannot start work", 1, models.RoleClient, lifecycle.StatusInProgress},
		{"cleaner cannot confirm", 5, models.RoleCleaner, lifecycle.StatusConfirmed},
		{"stranger cannot cancel", 9, models.RoleClient, lifecycle.StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, db := newJobService(t)
			defer db.Close()

			expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusPending, nil))

			_, err := svc.UpdateStatus(context.Background(), 7, tt.actorID, tt.role, tt.next)
			if !errors.Is(err, models.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestUpdateStatusRejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current string
		actorID int
		role    string
		next    string
	}{
		{"confirm before completion", lifecycle.StatusInProgress, 1, models.RoleClient, lifecycle.StatusConfirmed},
		{"cancel after work started", lifecycle.StatusInProgress, 1, models.RoleClient, lifecycle.StatusCancelled},
		{"paid is webhook only", lifecycle.StatusConfirmed, 1, models.RoleClient, lifecycle.StatusPaid},
		{"disputed has its own path", lifecycle.StatusCompleted, 1, models.RoleClient, lifecycle.StatusDisputed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, db := newJobService(t)
			defer db.Close()

			expectGetJob(mock, 7, jobRow(7, 1, 5, tt.current, nil))

			_, err := svc.UpdateStatus(context.Background(), 7, tt.actorID, tt.role, tt.next)
			if !errors.Is(err, models.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestGetJobHidesAddressFromOutsiders(t *testing.T) {
	svc, mock, db := newJobService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, nil, lifecycle.StatusOpen, nil))

	job, err := svc.GetJob(context.Background(), 7, 42, models.RoleCleaner)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.Address != "" {
		t.Fatalf("expected address withheld, got %q", job.Address)
	}
	if job.ZipCode != "35203" {
		t.Fatalf("zip should survive, got %q", job.ZipCode)
	}
}

func TestGetJobClosedToOutsidersOnceMatched(t *testing.T) {
	svc, mock, db := newJobService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusPending, nil))

	if _, err := svc.GetJob(context.Background(), 7, 42, models.RoleCleaner); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
