package models

import (
	"time"
)

type FavoriteCleaner struct {
	CleanerID       int       `json:"cleaner_id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	YearsExperience int       `json:"years_experience"`
	ServiceAreas    []string  `json:"service_areas"`
	AverageRating   float64   `json:"average_rating"`
	TotalReviews    int       `json:"total_reviews"`
	FavoritedAt     time.Time `json:"favorited_at"`
}
