package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

func strPtr(s string) *string { return &s }

func newReviewRepo(t *testing.T) (*ReviewRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return &ReviewRepository{DB: db}, mock, func() { db.Close() }
}

func TestCreateReviewSecondAttemptBlocked(t *testing.T) {
	repo, mock, closeDB := newReviewRepo(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reviews WHERE job_id = ? AND reviewer_id = ?`)).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.CreateReview(context.Background(),
		models.Review{JobID: 7, ReviewerID: 1, RevieweeID: 5, Rating: 4})
	if !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateReviewDuplicateRace(t *testing.T) {
	repo, mock, closeDB := newReviewRepo(t)
	defer closeDB()

	// Two concurrent submissions can both pass the count check; the unique
	// index on (job_id, reviewer_id) decides, and the loser still gets the
	// domain error.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reviews WHERE job_id = ? AND reviewer_id = ?`)).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs(7, 1, 5, 4, "solid work", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062})

	_, err := repo.CreateReview(context.Background(),
		models.Review{JobID: 7, ReviewerID: 1, RevieweeID: 5, Rating: 4, Comment: strPtr("solid work")})
	if !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateReviewReturnsInsertedRow(t *testing.T) {
	repo, mock, closeDB := newReviewRepo(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM reviews WHERE job_id = ? AND reviewer_id = ?`)).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs(7, 1, 5, 5, "spotless coop", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	rev, err := repo.CreateReview(context.Background(),
		models.Review{JobID: 7, ReviewerID: 1, RevieweeID: 5, Rating: 5, Comment: strPtr("spotless coop")})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if rev.ID != 11 {
		t.Fatalf("expected id 11, got %d", rev.ID)
	}
}
