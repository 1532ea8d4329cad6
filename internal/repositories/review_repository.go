package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE job_id = ? AND reviewer_id = ?`,
		rev.JobID, rev.ReviewerID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	query := `
               INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment, created_at)
               VALUES (?, ?, ?, ?, ?, ?)
       `
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		rev.JobID, rev.ReviewerID, rev.RevieweeID, rev.Rating, rev.Comment, now,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return models.Review{}, models.ErrAlreadyReviewed
		}
		return models.Review{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}

	rev.ID = int(insertedID)
	rev.CreatedAt = now
	return rev, nil
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID int) ([]models.Review, error) {
	query := `
               SELECT r.id, r.job_id, r.reviewer_id, r.reviewee_id, r.rating, r.comment, r.created_at,
                      u.name
               FROM reviews r
               JOIN users u ON u.id = r.reviewer_id
               WHERE r.reviewee_id = ?
               ORDER BY r.created_at DESC
       `
	rows, err := r.DB.QueryContext(ctx, query, revieweeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.JobID, &rev.ReviewerID, &rev.RevieweeID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.ReviewerName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) GetUserRating(ctx context.Context, revieweeID int) (models.UserRating, error) {
	var rating models.UserRating
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE reviewee_id = ?`, revieweeID).
		Scan(&avg, &rating.TotalReviews)
	if err != nil {
		return models.UserRating{}, err
	}
	rating.AverageRating = avg.Float64
	return rating, nil
}
