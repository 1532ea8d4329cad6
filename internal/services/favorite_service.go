package services

import (
	"context"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
	UserRepo     *repositories.UserRepository
}

func (s *FavoriteService) AddFavorite(ctx context.Context, clientID int, role string, cleanerID int) error {
	if role != models.RoleClient {
		return models.ErrForbidden
	}
	cleaner, err := s.UserRepo.GetUserByID(ctx, cleanerID)
	if err != nil {
		return err
	}
	if cleaner.Role != models.RoleCleaner {
		return models.ErrUserNotFound
	}
	return s.FavoriteRepo.AddFavorite(ctx, clientID, cleanerID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, clientID, cleanerID int) error {
	return s.FavoriteRepo.RemoveFavorite(ctx, clientID, cleanerID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, clientID, cleanerID int) (bool, error) {
	return s.FavoriteRepo.IsFavorite(ctx, clientID, cleanerID)
}

func (s *FavoriteService) ListFavorites(ctx context.Context, clientID int) ([]models.FavoriteCleaner, error) {
	return s.FavoriteRepo.ListByClient(ctx, clientID)
}
