package services

import (
	"context"
	"strings"

	"github.com/ckinger23/flock-and-fur/internal/lifecycle"
	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
)

// The marketplace serves a single metro area; every job carries the same
// city/state.
const (
	defaultCity  = "Birmingham"
	defaultState = "AL"
)

type JobService struct {
	JobRepo   *repositories.JobRepository
	PhotoRepo *repositories.PhotoRepository
	UserRepo  *repositories.UserRepository
	Email     *EmailService
	Push      *PushService
	Notify    Notifier
}

func (s *JobService) CreateJob(ctx context.Context, clientID int, role string, req models.CreateJobRequest) (models.Job, error) {
	if role != models.RoleClient && role != models.RoleAdmin {
		return models.Job{}, models.ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return models.Job{}, models.ErrInvalidInput
	}
	if len(req.AnimalTypes) == 0 || req.EnclosureType == "" {
		return models.Job{}, models.ErrInvalidInput
	}
	if req.NumberOfAnimals < 1 || strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.ZipCode) == "" {
		return models.Job{}, models.ErrInvalidInput
	}
	if req.SuggestedPrice != nil && req.SuggestedPrice.Sign() <= 0 {
		return models.Job{}, models.ErrInvalidInput
	}

	return s.JobRepo.CreateJob(ctx, models.Job{
		ClientID:        clientID,
		Title:           req.Title,
		Description:     req.Description,
		AnimalTypes:     req.AnimalTypes,
		EnclosureType:   req.EnclosureType,
		EnclosureSize:   req.EnclosureSize,
		NumberOfAnimals: req.NumberOfAnimals,
		Address:         req.Address,
		City:            defaultCity,
		State:           defaultState,
		ZipCode:         req.ZipCode,
		SuggestedPrice:  req.SuggestedPrice,
	})
}

// GetJob returns full detail to participants and admins. Everyone else only
// sees jobs still accepting applications, with the street address withheld.
func (s *JobService) GetJob(ctx context.Context, jobID, actorID int, actorRole string) (models.Job, error) {
	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}
	if isParticipant(job, actorID) || actorRole == models.RoleAdmin {
		return job, nil
	}
	if job.Status != lifecycle.StatusOpen {
		return models.Job{}, models.ErrForbidden
	}
	job.Address = ""
	return job, nil
}

func (s *JobService) ListOpenJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.JobRepo.ListOpenJobs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Address = ""
	}
	return jobs, nil
}

func (s *JobService) ListJobsByClient(ctx context.Context, clientID, actorID int, actorRole string) ([]models.Job, error) {
	if clientID != actorID && actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.JobRepo.ListJobsByClient(ctx, clientID)
}

func (s *JobService) ListJobsByCleaner(ctx context.Context, cleanerID, actorID int, actorRole string) ([]models.Job, error) {
	if cleanerID != actorID && actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.JobRepo.ListJobsByCleaner(ctx, cleanerID)
}

func (s *JobService) ListJobsByStatus(ctx context.Context, actorRole, status string) ([]models.Job, error) {
	if actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	if !lifecycle.Valid(status) {
		return nil, models.ErrInvalidInput
	}
	return s.JobRepo.ListJobsByStatus(ctx, status)
}

func (s *JobService) CountJobsByStatus(ctx context.Context, actorRole string) (map[string]int, error) {
	if actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.JobRepo.CountJobsByStatus(ctx)
}

// UpdateStatus drives every client- and cleaner-triggered lifecycle
// transition. Acceptance (open -> pending) goes through the application
// service, payment (confirmed -> paid) only through the webhook, and
// disputes through the dispute service; requesting those here fails.
func (s *JobService) UpdateStatus(ctx context.Context, jobID, actorID int, actorRole, next string) (models.Job, error) {
	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}

	isClient := job.ClientID == actorID
	isCleaner := job.CleanerID != nil && *job.CleanerID == actorID
	isAdmin := actorRole == models.RoleAdmin

	switch next {
	case lifecycle.StatusInProgress:
		if !isCleaner && !isAdmin {
			return models.Job{}, models.ErrForbidden
		}
	case lifecycle.StatusCompleted:
		if !isCleaner && !isAdmin {
			return models.Job{}, models.ErrForbidden
		}
		// Completion is claimed with evidence: the cleaner must have
		// uploaded at least one after photo first.
		count, err := s.PhotoRepo.CountByJobAndType(ctx, jobID, models.PhotoAfter)
		if err != nil {
			return models.Job{}, err
		}
		if count == 0 {
			return models.Job{}, models.ErrMissingAfterPhoto
		}
	case lifecycle.StatusConfirmed:
		if !isClient && !isAdmin {
			return models.Job{}, models.ErrForbidden
		}
	case lifecycle.StatusCancelled:
		if !isClient && !isAdmin {
			return models.Job{}, models.ErrForbidden
		}
		if !lifecycle.Cancellable(job.Status) {
			return models.Job{}, models.ErrInvalidTransition
		}
	default:
		return models.Job{}, models.ErrInvalidTransition
	}

	if !lifecycle.CanTransition(job.Status, next) {
		return models.Job{}, models.ErrInvalidTransition
	}

	if err := s.JobRepo.UpdateStatus(ctx, jobID, next); err != nil {
		return models.Job{}, err
	}

	updated, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}
	s.notifyStatus(ctx, updated)
	return updated, nil
}

// notifyStatus fans the new status out to the counterparty over email, push
// and websocket. All best effort.
func (s *JobService) notifyStatus(ctx context.Context, job models.Job) {
	if s.Notify != nil {
		s.Notify.JobStatusChanged(job.ID, job.Status, job.ClientID, job.CleanerID)
	}
	if s.Email == nil {
		return
	}

	switch job.Status {
	case lifecycle.StatusInProgress, lifecycle.StatusCompleted:
		client, err := s.UserRepo.GetUserByID(ctx, job.ClientID)
		if err == nil {
			s.Email.JobStatusChanged(client.Email, client.Name, job.Title, job.Status, "client", job.ID)
			s.Push.Notify(ctx, client.ID, "Job update", job.Title+" is now "+job.Status, s.Email.jobLink("client", job.ID))
		}
	case lifecycle.StatusConfirmed, lifecycle.StatusCancelled:
		if job.CleanerID != nil {
			cleaner, err := s.UserRepo.GetUserByID(ctx, *job.CleanerID)
			if err == nil {
				s.Email.JobStatusChanged(cleaner.Email, cleaner.Name, job.Title, job.Status, "cleaner", job.ID)
				s.Push.Notify(ctx, cleaner.ID, "Job update", job.Title+" is now "+job.Status, s.Email.jobLink("cleaner", job.ID))
			}
		}
	}
}

func isParticipant(job models.Job, userID int) bool {
	if job.ClientID == userID {
		return true
	}
	return job.CleanerID != nil && *job.CleanerID == userID
}
