package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

type JobApplication struct {
	ID            int              `json:"id"`
	JobID         int              `json:"job_id"`
	CleanerID     int              `json:"cleaner_id"`
	Message       *string          `json:"message,omitempty"`
	ProposedPrice *decimal.Decimal `json:"proposed_price,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`

	// Joined for list views.
	CleanerName *string `json:"cleaner_name,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
	JobStatus   *string `json:"job_status,omitempty"`
}
