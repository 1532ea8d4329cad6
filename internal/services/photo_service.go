package services

import (
	"context"
	"strings"

	"github.com/ckinger23/flock-and-fur/internal/models"
	"github.com/ckinger23/flock-and-fur/internal/repositories"
	"github.com/ckinger23/flock-and-fur/utils"
)

type PhotoService struct {
	PhotoRepo *repositories.PhotoRepository
	JobRepo   *repositories.JobRepository
	Storage   *utils.Storage
}

func validPhotoType(t string) bool {
	return t == models.PhotoBefore || t == models.PhotoAfter || t == models.PhotoIssue
}

// Clients document the mess, cleaners document the work: before photos come
// from the client, after/issue photos from the assigned cleaner.
func (s *PhotoService) authorizeUpload(job models.Job, actorID int, actorRole, photoType string) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	isClient := job.ClientID == actorID
	isCleaner := job.CleanerID != nil && *job.CleanerID == actorID
	switch photoType {
	case models.PhotoBefore:
		if !isClient {
			return models.ErrForbidden
		}
	case models.PhotoAfter, models.PhotoIssue:
		if !isCleaner {
			return models.ErrForbidden
		}
	}
	return nil
}

// Presign is phase one of the two-phase upload: hand the browser a
// write-capable URL. The object is PUT directly to storage, outside any
// transaction here.
func (s *PhotoService) Presign(ctx context.Context, actorID int, actorRole string, req models.PresignPhotoRequest) (models.PresignPhotoResponse, error) {
	if !validPhotoType(req.Type) || req.Filename == "" {
		return models.PresignPhotoResponse{}, models.ErrInvalidInput
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return models.PresignPhotoResponse{}, models.ErrInvalidInput
	}

	job, err := s.JobRepo.GetJobByID(ctx, req.JobID)
	if err != nil {
		return models.PresignPhotoResponse{}, err
	}
	if err := s.authorizeUpload(job, actorID, actorRole, req.Type); err != nil {
		return models.PresignPhotoResponse{}, err
	}

	key := utils.PhotoKey(req.JobID, req.Type, req.Filename)
	uploadURL, err := s.Storage.GetUploadURL(key, req.ContentType)
	if err != nil {
		return models.PresignPhotoResponse{}, models.ErrExternalService
	}

	return models.PresignPhotoResponse{
		UploadURL: uploadURL,
		PublicURL: s.Storage.GetPublicURL(key),
		Key:       key,
	}, nil
}

// SavePhoto is phase two: persist the record after the browser upload. The
// row is written regardless of whether the PUT actually happened; a missing
// object surfaces at display time.
func (s *PhotoService) SavePhoto(ctx context.Context, actorID int, actorRole string, req models.SavePhotoRequest) (models.Photo, error) {
	if !validPhotoType(req.Type) || req.URL == "" || req.Key == "" {
		return models.Photo{}, models.ErrInvalidInput
	}

	job, err := s.JobRepo.GetJobByID(ctx, req.JobID)
	if err != nil {
		return models.Photo{}, err
	}
	if err := s.authorizeUpload(job, actorID, actorRole, req.Type); err != nil {
		return models.Photo{}, err
	}

	return s.PhotoRepo.CreatePhoto(ctx, models.Photo{
		JobID:      req.JobID,
		UploaderID: actorID,
		Type:       req.Type,
		URL:        req.URL,
		StorageKey: req.Key,
		Caption:    req.Caption,
	})
}

func (s *PhotoService) ListByJob(ctx context.Context, jobID, actorID int, actorRole string) ([]models.Photo, error) {
	job, err := s.JobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(job, actorID) && actorRole != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.PhotoRepo.ListByJob(ctx, jobID)
}
