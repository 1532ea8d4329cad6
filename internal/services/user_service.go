package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
	"github.com/ckinger23/flock-and-fur/utils"
)

type UserService struct {
	UserRepo    *repositories.UserRepository
	ProfileRepo *repositories.CleanerProfileRepository

	SigningKey string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return models.User{}, models.ErrInvalidInput
	}
	if req.Role != models.RoleClient && req.Role != models.RoleCleaner {
		return models.User{}, models.ErrInvalidInput
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}
	if existing.Email != "" {
		return models.User{}, models.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashedPassword),
		Role:     req.Role,
	})
	if err != nil {
		return models.User{}, err
	}

	// Cleaners get an empty profile row up front so the profile page and
	// Stripe onboarding always have something to attach to.
	if user.Role == models.RoleCleaner {
		if err := s.ProfileRepo.CreateEmpty(ctx, user.ID); err != nil {
			return models.User{}, err
		}
	}

	return user, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.Tokens, models.User, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.Tokens{}, models.User{}, models.ErrInvalidCredentials
		}
		return models.Tokens{}, models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.Tokens{}, models.User{}, models.ErrInvalidCredentials
	}
	user.Password = ""

	accessToken, err := s.newAccessToken(user.ID, user.Role)
	if err != nil {
		return models.Tokens{}, models.User{}, err
	}

	tokens, err := s.createSession(ctx, user.ID, accessToken)
	if err != nil {
		return models.Tokens{}, models.User{}, err
	}
	return tokens, user, nil
}

func (s *UserService) newAccessToken(userID int, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.AccessTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})
	return token.SignedString([]byte(s.SigningKey))
}

func (s *UserService) createSession(ctx context.Context, userID int, accessToken string) (models.Tokens, error) {
	refresh, err := utils.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	tokens := models.Tokens{AccessToken: accessToken, RefreshToken: refresh}

	err = s.UserRepo.SetSession(ctx, userID, models.Session{
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    time.Now().Add(s.RefreshTTL),
	})
	if err != nil {
		return tokens, err
	}
	return tokens, nil
}

// RefreshAccessToken re-issues an access token from a still-valid refresh
// session. Used by the auth middleware when the bearer token has expired.
func (s *UserService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, models.Session, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return "", models.Session{}, models.ErrUnauthorized
	}
	if session.ExpiresAt.Before(time.Now()) {
		return "", models.Session{}, models.ErrUnauthorized
	}
	accessToken, err := s.newAccessToken(session.UserID, session.Role)
	if err != nil {
		return "", models.Session{}, err
	}
	return accessToken, session, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

// UpdateName is the only mutable user field; email and role are fixed at
// registration.
func (s *UserService) UpdateName(ctx context.Context, actorID, targetID int, actorRole, name string) error {
	if actorID != targetID && actorRole != models.RoleAdmin {
		return models.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrInvalidInput
	}
	return s.UserRepo.UpdateName(ctx, targetID, name)
}

func (s *UserService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	if role != "" && role != models.RoleClient && role != models.RoleCleaner && role != models.RoleAdmin {
		return nil, models.ErrInvalidInput
	}
	return s.UserRepo.ListUsers(ctx, role)
}

func (s *UserService) RegisterDeviceToken(ctx context.Context, userID int, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.ErrInvalidInput
	}
	return s.UserRepo.SaveDeviceToken(ctx, userID, token)
}
