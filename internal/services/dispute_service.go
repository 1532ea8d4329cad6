package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

type DisputeService struct {
	JobRepo  *repositories.JobRepository
	UserRepo *repositories.UserRepository
	Email    *EmailService
	Notify   Notifier
}

// CreateDispute pulls a completed or confirmed job into the disputed state,
// holding payment until an admin rules on it. The reason lands in its own
// column, not in the description.
func (s *DisputeService) CreateDispute(ctx context.Context, jobID, actorID int, reason string) (models.Job, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Job{}, models.ErrInvalidInput
	}

	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}
	if job.ClientID != actorID {
		return models.Job{}, models.ErrForbidden
	}
	if !lifecycle.Disputable(job.Status) {
		return models.Job{}, models.ErrInvalidTransition
	}

	if err := s.JobRepo.SetDispute(ctx, jobID, reason); err != nil {
		return models.Job{}, err
	}

	updated, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}

	if s.Notify != nil {
		s.Notify.JobStatusChanged(updated.ID, updated.Status, updated.ClientID, updated.CleanerID)
	}
	if s.Email != nil && updated.CleanerID != nil {
		cleaner, cerr := s.UserRepo.GetUserByID(ctx, *updated.CleanerID)
		if cerr == nil {
			s.Email.DisputeFiled(cleaner.Email, cleaner.Name, updated.Title, reason, updated.ID)
		}
	}

	return updated, nil
}

// ResolveDispute is admin-only and ends a dispute in one of three ways:
// refund the client (cancelled, no payout), pay the cleaner in full (paid,
// original split), or a partial payout (paid, explicit override amount).
// For partial resolutions the stored split is rewritten so that
// fee + payout still equals the agreed price.
func (s *DisputeService) ResolveDispute(ctx context.Context, jobID int, actorRole string, req models.ResolveDisputeRequest) (models.Job, error) {
	if actorRole != models.RoleAdmin {
		return models.Job{}, models.ErrForbidden
	}

	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}
	if job.Status != lifecycle.StatusDisputed {
		return models.Job{}, models.ErrJobNotDisputed
	}

	var (
		newStatus string
		outcome   string
		fee       decimal.NullDecimal
		payout    decimal.NullDecimal
	)
	switch req.Resolution {
	case models.ResolutionRefundClient:
		newStatus = lifecycle.StatusCancelled
		outcome = "The client has been issued a full refund."
	case models.ResolutionPayCleaner:
		newStatus = lifecycle.StatusPaid
		outcome = "The cleaner has been paid in full."
	case models.ResolutionPartial:
		if req.PayoutOverride == nil || job.AgreedPrice == nil {
			return models.Job{}, models.ErrInvalidInput
		}
		override := *req.PayoutOverride
		if override.Sign() <= 0 || override.GreaterThan(*job.AgreedPrice) {
			return models.Job{}, models.ErrInvalidInput
		}
		newStatus = lifecycle.StatusPaid
		outcome = "A partial payout of $" + override.StringFixed(2) + " has been applied."
		payout = decimal.NullDecimal{Decimal: override, Valid: true}
		fee = decimal.NullDecimal{Decimal: job.AgreedPrice.Sub(override), Valid: true}
	default:
		return models.Job{}, models.ErrInvalidInput
	}

	if err := s.JobRepo.SetResolution(ctx, jobID, newStatus, req.Resolution, req.Notes, fee, payout); err != nil {
		return models.Job{}, err
	}

	updated, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}

	if s.Notify != nil {
		s.Notify.JobStatusChanged(updated.ID, updated.Status, updated.ClientID, updated.CleanerID)
	}
	if s.Email != nil {
		client, cerr := s.UserRepo.GetUserByID(ctx, updated.ClientID)
		if cerr == nil {
			s.Email.DisputeResolved(client.Email, client.Name, updated.Title, outcome, req.Notes, "client", updated.ID)
		}
		if updated.CleanerID != nil {
			cleaner, werr := s.UserRepo.GetUserByID(ctx, *updated.CleanerID)
			if werr == nil {
				s.Email.DisputeResolved(cleaner.Email, cleaner.Name, updated.Title, outcome, req.Notes, "cleaner", updated.ID)
			}
		}
	}

	return updated, nil
}
