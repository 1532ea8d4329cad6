package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

type CleanerProfileRepository struct {
	DB *sql.DB
}

func (r *CleanerProfileRepository) CreateEmpty(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO cleaner_profiles (user_id, service_areas, created_at) VALUES (?, '[]', ?)`,
		userID, time.Now())
	if err != nil && isDuplicateEntryError(err) {
		return nil
	}
	return err
}

func (r *CleanerProfileRepository) GetByUserID(ctx context.Context, userID int) (models.CleanerProfile, error) {
	var (
		profile      models.CleanerProfile
		bio          sql.NullString
		experience   sql.NullString
		serviceAreas []byte
	)
	query := `
               SELECT id, user_id, bio, animal_experience, years_experience, has_transportation,
                      service_areas, stripe_account_id, stripe_onboarded, created_at, updated_at
               FROM cleaner_profiles
               WHERE user_id = ?
       `
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &bio, &experience, &profile.YearsExperience, &profile.HasTransportation,
		&serviceAreas, &profile.StripeAccountID, &profile.StripeOnboarded, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CleanerProfile{}, models.ErrProfileNotFound
		}
		return models.CleanerProfile{}, err
	}
	profile.Bio = bio.String
	profile.AnimalExperience = experience.String
	profile.ServiceAreas, err = unmarshalStringList(serviceAreas)
	if err != nil {
		return models.CleanerProfile{}, err
	}
	return profile, nil
}

// Upsert writes the whole editable portion of the profile. The caller merges
// partial updates onto the current row before calling.
func (r *CleanerProfileRepository) Upsert(ctx context.Context, profile models.CleanerProfile) error {
	serviceAreas, err := marshalStringList(profile.ServiceAreas)
	if err != nil {
		return err
	}
	query := `
               INSERT INTO cleaner_profiles (user_id, bio, animal_experience, years_experience, has_transportation, service_areas, created_at)
               VALUES (?, ?, ?, ?, ?, ?, NOW())
               ON DUPLICATE KEY UPDATE
                       bio = VALUES(bio),
                       animal_experience = VALUES(animal_experience),
                       years_experience = VALUES(years_experience),
                       has_transportation = VALUES(has_transportation),
                       service_areas = VALUES(service_areas),
                       updated_at = NOW()
       `
	_, err = r.DB.ExecContext(ctx, query,
		profile.UserID, profile.Bio, profile.AnimalExperience, profile.YearsExperience,
		profile.HasTransportation, serviceAreas,
	)
	return err
}

func (r *CleanerProfileRepository) SetStripeAccountID(ctx context.Context, userID int, accountID string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE cleaner_profiles SET stripe_account_id = ?, updated_at = NOW() WHERE user_id = ?`,
		accountID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProfileNotFound
	}
	return nil
}

// SetStripeOnboardedByAccount is keyed on the external account id because
// account.updated webhooks carry no user reference.
func (r *CleanerProfileRepository) SetStripeOnboardedByAccount(ctx context.Context, accountID string, onboarded bool) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE cleaner_profiles SET stripe_onboarded = ?, updated_at = NOW() WHERE stripe_account_id = ?`,
		onboarded, accountID)
	return err
}
