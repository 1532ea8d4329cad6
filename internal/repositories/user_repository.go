package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ckinger23/flock-and-fur/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
               INSERT INTO users (email, name, password, role, created_at)
               VALUES (?, ?, ?, ?, ?)
       `
	now := time.Now()
	result, err := r.DB.ExecContext(ctx, query, user.Email, user.Name, user.Password, user.Role, now)
	if err != nil {
		if isDuplicateEntryError(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	user.ID = int(insertedID)
	user.CreatedAt = now
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `SELECT id, email, name, role, created_at, updated_at FROM users WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail returns the row including the password hash, for sign-in.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query := `SELECT id, email, name, password, role, created_at, updated_at FROM users WHERE email = ?`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, id int, name string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET name = ?, updated_at = NOW() WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	query := `SELECT id, email, name, role, created_at, updated_at FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetSession(ctx context.Context, userID int, session models.Session) error {
	query := `
               INSERT INTO sessions (user_id, refresh_token, expires_at)
               VALUES (?, ?, ?)
               ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
       `
	_, err := r.DB.ExecContext(ctx, query, userID, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	query := `
               SELECT s.user_id, u.role, s.refresh_token, s.expires_at
               FROM sessions s
               JOIN users u ON u.id = s.user_id
               WHERE s.refresh_token = ?
       `
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID,
		&session.Role,
		&session.RefreshToken,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, models.ErrNoRecord
		}
		return models.Session{}, err
	}
	return session, nil
}

func (r *UserRepository) SaveDeviceToken(ctx context.Context, userID int, token string) error {
	query := `
               INSERT INTO device_tokens (user_id, token)
               VALUES (?, ?)
               ON DUPLICATE KEY UPDATE created_at = created_at
       `
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

func (r *UserRepository) GetDeviceTokens(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT token FROM device_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}
