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

func newPhotoService(t *testing.T) (*PhotoService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := &PhotoService{
		PhotoRepo: &repositories.PhotoRepository{DB: db},
		JobRepo:   &repositories.JobRepository{DB: db},
	}
	return svc, mock, db
}

func TestPresignValidatesInput(t *testing.T) {
	svc, _, db := newPhotoService(t)
	defer db.Close()

	tests := []struct {
		name string
		req  models.PresignPhotoRequest
	}{
		{"unknown type", models.PresignPhotoRequest{JobID: 7, Type: "during", Filename: "a.jpg", ContentType: "image/jpeg"}},
		{"missing filename", models.PresignPhotoRequest{JobID: 7, Type: models.PhotoBefore, ContentType: "image/jpeg"}},
		{"non-image content type", models.PresignPhotoRequest{JobID: 7, Type: models.PhotoBefore, Filename: "a.pdf", ContentType: "application/pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Presign(context.Background(), 1, models.RoleClient, tt.req)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPresignRoleGates(t *testing.T) {
	tests := []struct {
		name      string
		actorID   int
		role      string
		photoType string
	}{
		{"cleaner cannot upload before photos", 5, models.RoleCleaner, models.PhotoBefore},
		{"client cannot upload after photos", 1, models.RoleClient, models.PhotoAfter},
		{"client cannot upload issue photos", 1, models.RoleClient, models.PhotoIssue},
		{"unassigned cleaner cannot upload after photos", 9, models.RoleCleaner, models.PhotoAfter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, db := newPhotoService(t)
			defer db.Close()

			expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusInProgress, nil))

			_, err := svc.Presign(context.Background(), tt.actorID, tt.role, models.PresignPhotoRequest{
				JobID: 7, Type: tt.photoType, Filename: "a.jpg", ContentType: "image/jpeg",
			})
			if !errors.Is(err, models.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestListByJobParticipantsOnly(t *testing.T) {
	svc, mock, db := newPhotoService(t)
	defer db.Close()

	expectGetJob(mock, 7, jobRow(7, 1, 5, lifecycle.StatusInProgress, nil))

	_, err := svc.ListByJob(context.Background(), 7, 42, models.RoleCleaner)
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
