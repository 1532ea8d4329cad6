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

type JobRepository struct {
	DB *sql.DB
}

const jobColumns = `
       j.id, j.client_id, j.cleaner_id, j.title, j.description, j.animal_types,
       j.enclosure_type, j.enclosure_size, j.number_of_animals,
       j.address, j.city, j.state, j.zip_code,
       j.suggested_price, j.agreed_price, j.platform_fee, j.cleaner_payout,
       j.status, j.dispute_reason, j.resolution_type, j.resolution_notes,
       j.stripe_payment_intent_id,
       j.created_at, j.updated_at, j.completed_at, j.confirmed_at, j.paid_at
`

func scanJob(row interface{ Scan(...any) error }) (models.Job, error) {
	var (
		job         models.Job
		animalTypes []byte
		suggested   decimal.NullDecimal
		agreed      decimal.NullDecimal
		fee         decimal.NullDecimal
		payout      decimal.NullDecimal
	)
	err := row.Scan(
		&job.ID, &job.ClientID, &job.CleanerID, &job.Title, &job.Description, &animalTypes,
		&job.EnclosureType, &job.EnclosureSize, &job.NumberOfAnimals,
		&job.Address, &job.City, &job.State, &job.ZipCode,
		&suggested, &agreed, &fee, &payout,
		&job.Status, &job.DisputeReason, &job.ResolutionType, &job.ResolutionNotes,
		&job.StripePaymentIntentID,
		&job.CreatedAt, &job.UpdatedAt, &job.CompletedAt, &job.ConfirmedAt, &job.PaidAt,
	)
	if err != nil {
		return models.Job{}, err
	}
	job.AnimalTypes, err = unmarshalStringList(animalTypes)
	if err != nil {
		return models.Job{}, err
	}
	job.SuggestedPrice = nullDecimalPtr(suggested)
	job.AgreedPrice = nullDecimalPtr(agreed)
	job.PlatformFee = nullDecimalPtr(fee)
	job.CleanerPayout = nullDecimalPtr(payout)
	return job, nil
}

func (r *JobRepository) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	animalTypes, err := marshalStringList(job.AnimalTypes)
	if err != nil {
		return models.Job{}, err
	}

	query := `
               INSERT INTO jobs (client_id, title, description, animal_types, enclosure_type, enclosure_size,
                                 number_of_animals, address, city, state, zip_code, suggested_price, status, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
       `
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		job.ClientID, job.Title, job.Description, animalTypes, job.EnclosureType, job.EnclosureSize,
		job.NumberOfAnimals, job.Address, job.City, job.State, job.ZipCode,
		decimalNull(job.SuggestedPrice), lifecycle.StatusOpen, now,
	)
	if err != nil {
		return models.Job{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return models.Job{}, err
	}

	job.ID = int(insertedID)
	job.Status = lifecycle.StatusOpen
	job.CreatedAt = now
	return job, nil
}

func (r *JobRepository) GetJobByID(ctx context.Context, id int) (models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = ?`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Job{}, models.ErrJobNotFound
		}
		return models.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) ListOpenJobs(ctx context.Context) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.status = ? ORDER BY j.created_at DESC`
	return r.queryJobs(ctx, query, lifecycle.StatusOpen)
}

func (r *JobRepository) ListJobsByClient(ctx context.Context, clientID int) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.client_id = ? ORDER BY j.created_at DESC`
	return r.queryJobs(ctx, query, clientID)
}

func (r *JobRepository) ListJobsByCleaner(ctx context.Context, cleanerID int) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.cleaner_id = ? ORDER BY j.created_at DESC`
	return r.queryJobs(ctx, query, cleanerID)
}

func (r *JobRepository) ListJobsByStatus(ctx context.Context, status string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.status = ? ORDER BY j.created_at DESC`
	return r.queryJobs(ctx, query, status)
}

// UpdateStatus writes the new status plus the timestamp the transition owns.
// Callers are expected to have validated the transition already.
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID int, status string) error {
	query := `UPDATE jobs SET status = ?, updated_at = NOW()`
	switch status {
	case lifecycle.StatusCompleted:
		query += `, completed_at = NOW()`
	case lifecycle.StatusConfirmed:
		query += `, confirmed_at = NOW()`
	case lifecycle.StatusPaid:
		query += `, paid_at = NOW()`
	}
	query += ` WHERE id = ?`

	result, err := r.DB.ExecContext(ctx, query, status, jobID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) SetDispute(ctx context.Context, jobID int, reason string) error {
	query := `UPDATE jobs SET status = ?, dispute_reason = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, lifecycle.StatusDisputed, reason, jobID)
	return err
}

// SetResolution closes a dispute. When the override amounts are valid the
// recorded split is replaced so the stored numbers match what was actually
// paid out.
func (r *JobRepository) SetResolution(ctx context.Context, jobID int, status, resolutionType, notes string, fee, payout decimal.NullDecimal) error {
	query := `UPDATE jobs SET status = ?, resolution_type = ?, resolution_notes = ?, updated_at = NOW()`
	args := []any{status, resolutionType, notes}
	if fee.Valid && payout.Valid {
		query += `, platform_fee = ?, cleaner_payout = ?`
		args = append(args, fee, payout)
	}
	if status == lifecycle.StatusPaid {
		query += `, paid_at = NOW()`
	}
	query += ` WHERE id = ?`
	args = append(args, jobID)

	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

// MarkPaid is the webhook path. The status guard makes a replayed event a
// no-op: only a confirmed job can move to paid.
func (r *JobRepository) MarkPaid(ctx context.Context, jobID int, paymentIntentID string) (bool, error) {
	query := `
               UPDATE jobs
               SET status = ?, stripe_payment_intent_id = ?, paid_at = NOW(), updated_at = NOW()
               WHERE id = ? AND status = ?
       `
	result, err := r.DB.ExecContext(ctx, query, lifecycle.StatusPaid, paymentIntentID, jobID, lifecycle.StatusConfirmed)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *JobRepository) CountJobsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
