package repositories

import (
	"context"
	"database/sql"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

func (r *FavoriteRepository) AddFavorite(ctx context.Context, clientID, cleanerID int) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO favorite_cleaners (client_id, cleaner_id) VALUES (?, ?)`,
		clientID, cleanerID)
	if err != nil && isDuplicateEntryError(err) {
		// Favoriting twice is a no-op, not an error.
		return nil
	}
	return err
}

func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, clientID, cleanerID int) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorite_cleaners WHERE client_id = ? AND cleaner_id = ?`,
		clientID, cleanerID)
	return err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, clientID, cleanerID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorite_cleaners WHERE client_id = ? AND cleaner_id = ?`,
		clientID, cleanerID).Scan(&count)
	return count > 0, err
}

func (r *FavoriteRepository) ListByClient(ctx context.Context, clientID int) ([]models.FavoriteCleaner, error) {
	query := `
               SELECT f.cleaner_id, u.name,
                      COALESCE(p.bio, ''), COALESCE(p.years_experience, 0), COALESCE(p.service_areas, '[]'),
                      COALESCE(AVG(r.rating), 0), COUNT(r.id),
                      f.created_at
               FROM favorite_cleaners f
               JOIN users u ON u.id = f.cleaner_id
               LEFT JOIN cleaner_profiles p ON p.user_id = f.cleaner_id
               LEFT JOIN reviews r ON r.reviewee_id = f.cleaner_id
               WHERE f.client_id = ?
               GROUP BY f.cleaner_id, u.name, p.bio, p.years_experience, p.service_areas, f.created_at
               ORDER BY f.created_at DESC
       `
	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []models.FavoriteCleaner{}
	for rows.Next() {
		var (
			fav          models.FavoriteCleaner
			serviceAreas []byte
			avg          sql.NullFloat64
		)
		if err := rows.Scan(&fav.CleanerID, &fav.Name, &fav.Bio, &fav.YearsExperience, &serviceAreas, &avg, &fav.TotalReviews, &fav.FavoritedAt); err != nil {
			return nil, err
		}
		fav.AverageRating = avg.Float64
		fav.ServiceAreas, err = unmarshalStringList(serviceAreas)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}
