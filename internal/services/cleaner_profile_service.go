package services

import (
	"context"
	"errors"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

type CleanerProfileService struct {
	ProfileRepo *repositories.CleanerProfileRepository
}

func (s *CleanerProfileService) GetProfile(ctx context.Context, userID int) (models.CleanerProfile, error) {
	return s.ProfileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile merges the submitted fields onto the current row. A cleaner
// registered before profiles existed gets one created lazily here.
func (s *CleanerProfileService) UpdateProfile(ctx context.Context, userID int, role string, req models.UpdateCleanerProfileRequest) (models.CleanerProfile, error) {
	if role != models.RoleCleaner {
		return models.CleanerProfile{}, models.ErrForbidden
	}

	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrProfileNotFound) {
			return models.CleanerProfile{}, err
		}
		profile = models.CleanerProfile{UserID: userID, ServiceAreas: []string{}}
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AnimalExperience != nil {
		profile.AnimalExperience = *req.AnimalExperience
	}
	if req.YearsExperience != nil {
		if *req.YearsExperience < 0 {
			return models.CleanerProfile{}, models.ErrInvalidInput
		}
		profile.YearsExperience = *req.YearsExperience
	}
	if req.HasTransportation != nil {
		profile.HasTransportation = *req.HasTransportation
	}
	if req.ServiceAreas != nil {
		profile.ServiceAreas = *req.ServiceAreas
	}

	if err := s.ProfileRepo.Upsert(ctx, profile); err != nil {
		return models.CleanerProfile{}, err
	}
	return s.ProfileRepo.GetByUserID(ctx, userID)
}
