package services

import (
	"context"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

type ReviewService struct {
	ReviewRepo *repositories.ReviewRepository
	JobRepo    *repositories.JobRepository
	UserRepo   *repositories.UserRepository
	Email      *EmailService
}

// CreateReview lets each side of a paid job rate the other exactly once.
func (s *ReviewService) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return models.Review{}, models.ErrInvalidInput
	}

	job, err := s.JobRepo.GetJobByID(ctx, rev.JobID)
	if err != nil {
		return models.Review{}, err
	}
	if job.Status != lifecycle.StatusPaid {
		return models.Review{}, models.ErrJobNotPaid
	}

	isClient := job.ClientID == rev.ReviewerID
	isCleaner := job.CleanerID != nil && *job.CleanerID == rev.ReviewerID
	if !isClient && !isCleaner {
		return models.Review{}, models.ErrForbidden
	}
	// The reviewee must be exactly the other party.
	if isClient && (job.CleanerID == nil || rev.RevieweeID != *job.CleanerID) {
		return models.Review{}, models.ErrInvalidInput
	}
	if isCleaner && rev.RevieweeID != job.ClientID {
		return models.Review{}, models.ErrInvalidInput
	}

	created, err := s.ReviewRepo.CreateReview(ctx, rev)
	if err != nil {
		return models.Review{}, err
	}

	if s.Email != nil {
		reviewer, rerr := s.UserRepo.GetUserByID(ctx, rev.ReviewerID)
		reviewee, eerr := s.UserRepo.GetUserByID(ctx, rev.RevieweeID)
		if rerr == nil && eerr == nil {
			role := "client"
			if reviewee.Role == models.RoleCleaner {
				role = "cleaner"
			}
			s.Email.ReviewReceived(reviewee.Email, reviewee.Name, reviewer.Name, job.Title, rev.Rating, role, job.ID)
		}
	}

	return created, nil
}

func (s *ReviewService) ListByReviewee(ctx context.Context, revieweeID int) ([]models.Review, error) {
	return s.ReviewRepo.ListByReviewee(ctx, revieweeID)
}

func (s *ReviewService) GetUserRating(ctx context.Context, userID int) (models.UserRating, error) {
	return s.ReviewRepo.GetUserRating(ctx, userID)
}
