package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/shopspring/decimal"
)

type JobApplicationRepository struct {
	DB *sql.DB
}

func (r *JobApplicationRepository) CreateApplication(ctx context.Context, app models.JobApplication) (models.JobApplication, error) {
	query := `
               INSERT INTO job_applications (job_id, cleaner_id, message, proposed_price, status, created_at)
               VALUES (?, ?, ?, ?, ?, ?)
       `
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		app.JobID, app.CleanerID, app.Message, decimalNull(app.ProposedPrice), models.ApplicationPending, now,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return models.JobApplication{}, models.ErrAlreadyApplied
		}
		return models.JobApplication{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return models.JobApplication{}, err
	}

	app.ID = int(insertedID)
	app.Status = models.ApplicationPending
	app.CreatedAt = now
	return app, nil
}

func (r *JobApplicationRepository) GetByID(ctx context.Context, id int) (models.JobApplication, error) {
	var (
		app      models.JobApplication
		proposed decimal.NullDecimal
	)
	query := `
               SELECT a.id, a.job_id, a.cleaner_id, a.message, a.proposed_price, a.status, a.created_at
               FROM job_applications a
               WHERE a.id = ?
       `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CleanerID, &app.Message, &proposed, &app.Status, &app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobApplication{}, models.ErrApplicationNotFound
		}
		return models.JobApplication{}, err
	}
	app.ProposedPrice = nullDecimalPtr(proposed)
	return app, nil
}

func (r *JobApplicationRepository) ListByJob(ctx context.Context, jobID int) ([]models.JobApplication, error) {
	query := `
               SELECT a.id, a.job_id, a.cleaner_id, a.message, a.proposed_price, a.status, a.created_at,
                      u.name
               FROM job_applications a
               JOIN users u ON u.id = a.cleaner_id
               WHERE a.job_id = ?
               ORDER BY a.created_at ASC
       `
	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.JobApplication{}
	for rows.Next() {
		var (
			app      models.JobApplication
			proposed decimal.NullDecimal
		)
		if err := rows.Scan(&app.ID, &app.JobID, &app.CleanerID, &app.Message, &proposed, &app.Status, &app.CreatedAt, &app.CleanerName); err != nil {
			return nil, err
		}
		app.ProposedPrice = nullDecimalPtr(proposed)
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *JobApplicationRepository) ListByCleaner(ctx context.Context, cleanerID int) ([]models.JobApplication, error) {
	query := `
               SELECT a.id, a.job_id, a.cleaner_id, a.message, a.proposed_price, a.status, a.created_at,
                      j.title, j.status
               FROM job_applications a
               JOIN jobs j ON j.id = a.job_id
               WHERE a.cleaner_id = ?
               ORDER BY a.created_at DESC
       `
	rows, err := r.DB.QueryContext(ctx, query, cleanerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.JobApplication{}
	for rows.Next() {
		var (
			app      models.JobApplication
			proposed decimal.NullDecimal
		)
		if err := rows.Scan(&app.ID, &app.JobID, &app.CleanerID, &app.Message, &proposed, &app.Status, &app.CreatedAt, &app.JobTitle, &app.JobStatus); err != nil {
			return nil, err
		}
		app.ProposedPrice = nullDecimalPtr(proposed)
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// DeletePending withdraws an application that has not been decided yet.
func (r *JobApplicationRepository) DeletePending(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM job_applications WHERE id = ? AND status = ?`, id, models.ApplicationPending)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrApplicationNotFound
	}
	return nil
}

// AcceptApplication is the single multi-row transaction in the system. The
// job row is locked first so concurrent accepts on the same job serialize;
// the loser sees a non-open status and gets ErrJobNotOpen. Within one commit:
// the chosen application becomes accepted, every sibling becomes rejected,
// and the job is assigned with its computed split.
func (r *JobApplicationRepository) AcceptApplication(ctx context.Context, app models.JobApplication, agreed, fee, payout decimal.Decimal) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM jobs WHERE id = ? FOR UPDATE`, app.JobID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrJobNotFound
		}
		return err
	}
	if status != lifecycle.StatusOpen {
		return models.ErrJobNotOpen
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE job_applications SET status = ? WHERE id = ?`,
		models.ApplicationAccepted, app.ID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE job_applications SET status = ? WHERE job_id = ? AND id <> ?`,
		models.ApplicationRejected, app.JobID, app.ID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE jobs SET cleaner_id = ?, status = ?, agreed_price = ?, platform_fee = ?, cleaner_payout = ?, updated_at = NOW() WHERE id = ?`,
		app.CleanerID, lifecycle.StatusPending, agreed, fee, payout, app.JobID); err != nil {
		return err
	}

	return tx.Commit()
}
