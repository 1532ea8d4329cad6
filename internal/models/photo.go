package models

import (
	"time"
)

const (
	PhotoBefore = "before"
	PhotoAfter  = "after"
	PhotoIssue  = "issue"
)

// Photo rows are write-once. The underlying object lives in S3; a missing
// object is a display-time failure, not a data-integrity error.
type Photo struct {
	ID         int       `json:"id"`
	JobID      int       `json:"job_id"`
	UploaderID int       `json:"uploader_id"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	StorageKey string    `json:"storage_key"`
	Caption    *string   `json:"caption,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type PresignPhotoRequest struct {
	JobID       int    `json:"job_id"`
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type PresignPhotoResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

type SavePhotoRequest struct {
	JobID   int     `json:"job_id"`
	Type    string  `json:"type"`
	URL     string  `json:"url"`
	Key     string  `json:"key"`
	Caption *string `json:"caption"`
}
