package models

import (
	"time"
)

type Review struct {
	ID         int       `json:"id"`
	JobID      int       `json:"job_id"`
	ReviewerID int       `json:"reviewer_id"`
	RevieweeID int       `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	ReviewerName *string `json:"reviewer_name,omitempty"`
}

type UserRating struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}
