package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

func newDisputeService(t *testing.T) (*DisputeService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := &DisputeService{
		JobRepo:  &repositories.JobRepository{DB: db},
		UserRepo: &repositories.UserRepository{DB: db},
	}
	return svc, mock, db
}

func TestCreateDisputeOnlyFromCompletedOrConfirmed(t *testing.T) {
	for _, status := range []string{lifecycle.StatusOpen, lifecycle.StatusPending, lifecycle.StatusInProgress, lifecycle.StatusPaid, lifecycle.StatusDisputed} {
		t.Run(status, func(t *testing.T) {
			svc, mock, db := newDisputeService(t)
			defer db.Close()

			expectGetJob(mock, 7, jobRow(7, 1, 5, status, nil))

			_, err := svc.CreateDispute(context.Background(), 7, 1, "tank still cloudy")
			if !errors.Is(err, models.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition from %s, got %v", status, err)
			}
		})
	}
}

func TestCreateDisputeRequiresReason(t *testing.T) {
	svc, _, db := newDisputeService(t)
	defer db.Close()

	_, err := svc.CreateDispute(context.Background(), 7, 1, "   ")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateDisputeClientOnly(t *testing.T) {
	svc, mock, db := newDisputeService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusCompleted, nil))

	_, err := svc.CreateDispute(context.Background(), 7, 5, "work was fine actually")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateDisputeRecordsReason(t *testing.T) {
	svc, mock, db := newDisputeService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusCompleted, nil))
	mock.ExpectExec(`UPDATE jobs SET status = \?, dispute_reason = \?, updated_at = NOW\(\) WHERE id = \?`).
		WithArgs(lifecycle.StatusDisputed, "tank still cloudy", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusDisputed, nil))

	job, err := svc.CreateDispute(context.Background(), 7, 1, "tank still cloudy")
	if err != nil {
		t.Fatalf("CreateDispute: %v", err)
	}
	if job.Status != lifecycle.StatusDisputed {
		t.Fatalf("expected disputed, got %s", job.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestResolveDisputeAdminOnly(t *testing.T) {
	svc, _, db := newDisputeService(t)
	defer db.Close()

	_, err := svc.ResolveDispute(context.Background(), 7, models.RoleClient, models.ResolveDisputeRequest{Resolution: models.ResolutionRefundClient})
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResolveDisputeNotDisputed(t *testing.T) {
	svc, mock, db := newDisputeService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusCompleted, nil))

	_, err := svc.ResolveDispute(context.Background(), 7, models.RoleAdmin, models.ResolveDisputeRequest{Resolution: models.ResolutionRefundClient})
	if !errors.Is(err, models.ErrJobNotDisputed) {
		t.Fatalf("expected ErrJobNotDisputed, got %v", err)
	}
}

func TestResolveDisputePartialValidatesOverride(t *testing.T) {
	over := decimal.RequireFromString("120.00")
	zero := decimal.Zero

	tests := []struct {
		name     string
		override *decimal.Decimal
	}{
		{"missing override", nil},
		{"zero override", &zero},
		{"override above agreed price", &over},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, db := newDisputeService(t)
			defer db.Close()

			expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusDisputed, "100.00"))

			_, err := svc.ResolveDispute(context.Background(), 7, models.RoleAdmin, models.ResolveDisputeRequest{
				Resolution:     models.ResolutionPartial,
				PayoutOverride: tt.override,
			})
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestResolveDisputePartialRewritesSplit(t *testing.T) {
	svc, mock, db := newDisputeService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusDisputed, "100.00"))
	// Override payout 60 means the stored fee becomes 40 so the split still
	// sums to the agreed 100.
	mock.ExpectExec(`UPDATE jobs SET status = \?, resolution_type = \?, resolution_notes = \?, updated_at = NOW\(\), platform_fee = \?, cleaner_payout = \?, paid_at = NOW\(\) WHERE id = \?`).
		WithArgs(lifecycle.StatusPaid, models.ResolutionPartial, "half the stalls untouched", sqlmock.AnyArg(), sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusPaid, "100.00"))

	override := decimal.RequireFromString("60.00")
	job, err := svc.ResolveDispute(context.Background(), 7, models.RoleAdmin, models.ResolveDisputeRequest{
		Resolution:     models.ResolutionPartial,
		Notes:          "half the stalls untouched",
		PayoutOverride: &override,
	})
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	if job.Status != lifecycle.StatusPaid {
		t.Fatalf("expected paid, got %s", job.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestResolveDisputeRefundCancels(t *testing.T) {
	svc, mock, db := newDisputeService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusDisputed, "100.00"))
	mock.ExpectExec(`UPDATE jobs SET status = \?, resolution_type = \?, resolution_notes = \?, updated_at = NOW\(\) WHERE id = \?`).
		WithArgs(lifecycle.StatusCancelled, models.ResolutionRefundClient, "", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusCancelled, "100.00"))

	job, err := svc.ResolveDispute(context.Background(), 7, models.RoleAdmin, models.ResolveDisputeRequest{
		Resolution: models.ResolutionRefundClient,
	})
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	if job.Status != lifecycle.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", job.Status)
	}
}
