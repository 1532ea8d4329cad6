package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Photo categories and dispute resolutions share the job's vocabulary, so
// they live here next to the Job aggregate.
const (
	EnclosureCoop      = "coop"
	EnclosureAquarium  = "aquarium"
	EnclosureTerrarium = "terrarium"
	EnclosureCage      = "cage"
	EnclosureKennel    = "kennel"
	EnclosureStall     = "stall"
	EnclosureOther     = "other"
)

const (
	ResolutionRefundClient = "refund_client"
	ResolutionPayCleaner   = "pay_cleaner"
	ResolutionPartial      = "partial"
)

type Job struct {
	ID              int      `json:"id"`
	ClientID        int      `json:"client_id"`
	CleanerID       *int     `json:"cleaner_id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	AnimalTypes     []string `json:"animal_types"`
	EnclosureType   string   `json:"enclosure_type"`
	EnclosureSize   *string  `json:"enclosure_size,omitempty"`
	NumberOfAnimals int      `json:"number_of_animals"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ZipCode         string   `json:"zip_code"`

	SuggestedPrice *decimal.Decimal `json:"suggested_price,omitempty"`
	AgreedPrice    *decimal.Decimal `json:"agreed_price,omitempty"`
	PlatformFee    *decimal.Decimal `json:"platform_fee,omitempty"`
	CleanerPayout  *decimal.Decimal `json:"cleaner_payout,omitempty"`

	Status string `json:"status"`

	DisputeReason   *string `json:"dispute_reason,omitempty"`
	ResolutionType  *string `json:"resolution_type,omitempty"`
	ResolutionNotes *string `json:"resolution_notes,omitempty"`

	StripePaymentIntentID *string `json:"stripe_payment_intent_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

type CreateJobRequest struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	AnimalTypes     []string         `json:"animal_types"`
	EnclosureType   string           `json:"enclosure_type"`
	EnclosureSize   *string          `json:"enclosure_size"`
	NumberOfAnimals int              `json:"number_of_animals"`
	Address         string           `json:"address"`
	ZipCode         string           `json:"zip_code"`
	SuggestedPrice  *decimal.Decimal `json:"suggested_price"`
}

type ResolveDisputeRequest struct {
	Resolution     string           `json:"resolution"`
	Notes          string           `json:"notes"`
	PayoutOverride *decimal.Decimal `json:"payout_override"`
}
