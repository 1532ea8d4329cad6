package models

import (
	"errors"
)

var (
	ErrNoRecord            = errors.New("models: no matching record found")
	ErrInvalidCredentials  = errors.New("models: invalid credentials")
	ErrDuplicateEmail      = errors.New("models: duplicate email")
	ErrUserNotFound        = errors.New("models: user not found")
	ErrJobNotFound         = errors.New("models: job not found")
	ErrApplicationNotFound = errors.New("models: application not found")
	ErrProfileNotFound     = errors.New("models: cleaner profile not found")

	ErrUnauthorized = errors.New("models: authentication required")
	ErrForbidden    = errors.New("models: action not allowed for this user")

	ErrInvalidTransition = errors.New("models: status transition not allowed")
	ErrJobNotOpen        = errors.New("models: job is no longer accepting applications")
	ErrJobNotDisputed    = errors.New("models: job is not in dispute")
	ErrJobNotPaid        = errors.New("models: job is not paid yet")

	ErrAlreadyApplied  = errors.New("models: cleaner already applied to this job")
	ErrAlreadyReviewed = errors.New("models: job already reviewed by this user")

	ErrInvalidInput      = errors.New("models: invalid input")
	ErrNoAgreedPrice     = errors.New("models: no price available for acceptance")
	ErrMissingAfterPhoto = errors.New("models: at least one after photo is required")

	ErrCleanerNotOnboarded = errors.New("models: cleaner has not completed payment setup")
	ErrExternalService     = errors.New("models: external service failure")
)
