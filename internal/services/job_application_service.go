package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/pricing"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

type JobApplicationService struct {
	ApplicationRepo *repositories.JobApplicationRepository
	JobRepo         *repositories.JobRepository
	UserRepo        *repositories.UserRepository
	Email           *EmailService
	Push            *PushService
	Notify          Notifier
}

func (s *JobApplicationService) Apply(ctx context.Context, jobID, cleanerID int, role string, message *string, proposedPrice *decimal.Decimal) (models.JobApplication, error) {
	if role != models.RoleCleaner {
		return models.JobApplication{}, models.ErrForbidden
	}
	if proposedPrice != nil && proposedPrice.Sign() <= 0 {
		return models.JobApplication{}, models.ErrInvalidInput
	}

	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.JobApplication{}, err
	}
	if job.Status != lifecycle.StatusOpen {
		return models.JobApplication{}, models.ErrJobNotOpen
	}

	// The unique (job_id, cleaner_id) key backs this up under concurrency.
	app, err := s.ApplicationRepo.CreateApplication(ctx, models.JobApplication{
		JobID:         jobID,
		CleanerID:     cleanerID,
		Message:       message,
		ProposedPrice: proposedPrice,
	})
	if err != nil {
		return models.JobApplication{}, err
	}

	if s.Notify != nil {
		s.Notify.ApplicationReceived(jobID, job.ClientID)
	}
	if s.Email != nil {
		client, cerr := s.UserRepo.GetUserByID(ctx, job.ClientID)
		cleaner, werr := s.UserRepo.GetUserByID(ctx, cleanerID)
		if cerr == nil && werr == nil {
			s.Email.ApplicationReceived(client.Email, client.Name, cleaner.Name, job.Title, proposedPrice, jobID)
			s.Push.Notify(ctx, client.ID, "New application", cleaner.Name+" applied to "+job.Title, s.Email.jobLink("client", jobID))
		}
	}

	return app, nil
}

// Accept picks the winning application. The price must be determinable up
// front: the cleaner's proposed price, else the client's suggested price,
// else the acceptance is rejected outright. The repository runs the
// three-way update in one transaction.
func (s *JobApplicationService) Accept(ctx context.Context, applicationID, actorID int, actorRole string) (models.Job, error) {
	app, err := s.ApplicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return models.Job{}, err
	}

	job, err := s.JobRepo.GetJobByID(ctx, app.JobID)
	if err != nil {
		return models.Job{}, err
	}
	if job.ClientID != actorID && actorRole != models.RoleAdmin {
		return models.Job{}, models.ErrForbidden
	}
	if job.Status != lifecycle.StatusOpen {
		return models.Job{}, models.ErrJobNotOpen
	}

	var agreed decimal.Decimal
	switch {
	case app.ProposedPrice != nil:
		agreed = *app.ProposedPrice
	case job.SuggestedPrice != nil:
		agreed = *job.SuggestedPrice
	default:
		return models.Job{}, models.ErrNoAgreedPrice
	}
	if agreed.Sign() <= 0 {
		return models.Job{}, models.ErrNoAgreedPrice
	}

	fee, payout := pricing.Split(agreed)
	if err := s.ApplicationRepo.AcceptApplication(ctx, app, agreed, fee, payout); err != nil {
		return models.Job{}, err
	}

	updated, err := s.JobRepo.GetJobByID(ctx, app.JobID)
	if err != nil {
		return models.Job{}, err
	}

	if s.Notify != nil {
		s.Notify.JobStatusChanged(updated.ID, updated.Status, updated.ClientID, updated.CleanerID)
	}
	if s.Email != nil {
		cleaner, cerr := s.UserRepo.GetUserByID(ctx, app.CleanerID)
		if cerr == nil {
			s.Email.ApplicationAccepted(cleaner.Email, cleaner.Name, updated.Title, agreed, payout, updated.ID)
			s.Push.Notify(ctx, cleaner.ID, "Application accepted", "You got the job: "+updated.Title, s.Email.jobLink("cleaner", updated.ID))
		}
	}

	return updated, nil
}

// Withdraw removes a still-pending application. Decided applications are
// immutable.
func (s *JobApplicationService) Withdraw(ctx context.Context, applicationID, actorID int) error {
	app, err := s.ApplicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.CleanerID != actorID {
		return models.ErrForbidden
	}
	return s.ApplicationRepo.DeletePending(ctx, applicationID)
}

func (s *JobApplicationService) ListByJob(ctx context.Context, jobID, actorID int, actorRole string) ([]models.JobApplication, error) {
	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ClientID != actorID && actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.ApplicationRepo.ListByJob(ctx, jobID)
}

func (s *JobApplicationService) ListByCleaner(ctx context.Context, cleanerID, actorID int, actorRole string) ([]models.JobApplication, error) {
	if cleanerID != actorID && actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.ApplicationRepo.ListByCleaner(ctx, cleanerID)
}
