package models

import (
	"time"
)

type CleanerProfile struct {
	ID                int        `json:"id"`
	UserID            int        `json:"user_id"`
	Bio               string     `json:"bio"`
	AnimalExperience  string     `json:"animal_experience"`
	YearsExperience   int        `json:"years_experience"`
	HasTransportation bool       `json:"has_transportation"`
	ServiceAreas      []string   `json:"service_areas"`
	StripeAccountID   *string    `json:"stripe_account_id,omitempty"`
	StripeOnboarded   bool       `json:"stripe_onboarded"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type StripeAccountStatus struct {
	Connected      bool `json:"connected"`
	Onboarded      bool `json:"onboarded"`
	ChargesEnabled bool `json:"charges_enabled"`
	PayoutsEnabled bool `json:"payouts_enabled"`
}

type UpdateCleanerProfileRequest struct {
	Bio               *string   `json:"bio"`
	AnimalExperience  *string   `json:"animal_experience"`
	YearsExperience   *int      `json:"years_experience"`
	HasTransportation *bool     `json:"has_transportation"`
	ServiceAreas      *[]string `json:"service_areas"`
}
