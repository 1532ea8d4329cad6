package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
)

func TestMarkPaidGuardsOnConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &JobRepository{DB: db}

	query := `
               UPDATE jobs
               SET status = ?, stripe_payment_intent_id = ?, paid_at = NOW(), updated_at = NOW()
               WHERE id = ? AND status = ?
       `
	mock.ExpectExec(query).
		WithArgs(lifecycle.StatusPaid, "pi_123", 7, lifecycle.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs(lifecycle.StatusPaid, "pi_123", 7, lifecycle.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := repo.MarkPaid(context.Background(), 7, "pi_123")
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if !transitioned {
		t.Fatal("expected first MarkPaid to transition")
	}

	// Webhook replay: the guard sees a non-confirmed status and does nothing.
	transitioned, err = repo.MarkPaid(context.Background(), 7, "pi_123")
	if err != nil {
		t.Fatalf("MarkPaid replay: %v", err)
	}
	if transitioned {
		t.Fatal("expected replayed MarkPaid to be a no-op")
	}
}

func TestUpdateStatusStampsOwnedTimestamp(t *testing.T) {
	tests := []struct {
		status string
		query  string
	}{
		{lifecycle.StatusCompleted, `UPDATE jobs SET status = ?, updated_at = NOW(), completed_at = NOW() WHERE id = ?`},
		{lifecycle.StatusConfirmed, `UPDATE jobs SET status = ?, updated_at = NOW(), confirmed_at = NOW() WHERE id = ?`},
		{lifecycle.StatusInProgress, `UPDATE jobs SET status = ?, updated_at = NOW() WHERE id = ?`},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer db.Close()
			repo := &JobRepository{DB: db}

			mock.ExpectExec(tt.query).
				WithArgs(tt.status, 7).
				WillReturnResult(sqlmock.NewResult(0, 1))

			if err := repo.UpdateStatus(context.Background(), 7, tt.status); err != nil {
				t.Fatalf("UpdateStatus(%s): %v", tt.status, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestUpdateStatusMissingJob(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &JobRepository{DB: db}

	mock.ExpectExec(`UPDATE jobs SET status = ?, updated_at = NOW() WHERE id = ?`).
		WithArgs(lifecycle.StatusInProgress, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), 99, lifecycle.StatusInProgress); !errors.Is(err, models.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
