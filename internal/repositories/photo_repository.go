package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

type PhotoRepository struct {
	DB *sql.DB
}

func (r *PhotoRepository) CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	query := `
               INSERT INTO photos (job_id, uploader_id, type, url, storage_key, caption, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?)
       `
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		photo.JobID, photo.UploaderID, photo.Type, photo.URL, photo.StorageKey, photo.Caption, now,
	)
	if err != nil {
		return models.Photo{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return models.Photo{}, err
	}

	photo.ID = int(insertedID)
	photo.CreatedAt = now
	return photo, nil
}

func (r *PhotoRepository) ListByJob(ctx context.Context, jobID int) ([]models.Photo, error) {
	query := `
               SELECT id, job_id, uploader_id, type, url, storage_key, caption, created_at
               FROM photos
               WHERE job_id = ?
               ORDER BY created_at ASC
       `
	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(&photo.ID, &photo.JobID, &photo.UploaderID, &photo.Type, &photo.URL, &photo.StorageKey, &photo.Caption, &photo.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) CountByJobAndType(ctx context.Context, jobID int, photoType string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM photos WHERE job_id = ? AND type = ?`, jobID, photoType).Scan(&count)
	return count, err
}
