package types

import (
	"errors"
	"fmt"
)

var (
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrDonationNotFound    = errors.New("donation not found")
	ErrRequestNotFound     = errors.New("request not found")
	ErrCodeNotFound        = errors.New("verification code not found")
	ErrSessionNotFound     = errors.New("session not found")

	// ErrDuplicateContact is returned when a beneficiary registration reuses
	// an email or phone already present in the store.
	ErrDuplicateContact = errors.New("email or phone already registered")

	ErrInvalidCode = errors.New("invalid verification code")

	// ErrCodeExpired refines ErrInvalidCode: errors.Is matches either, so
	// callers checking ErrInvalidCode also catch expiry.
	ErrCodeExpired = fmt.Errorf("%w: expired", ErrInvalidCode)

	ErrRateLimited     = errors.New("resend requested too soon")
	ErrAlreadyVerified = errors.New("beneficiary already verified")

	// ErrInvalidState is returned when a status transition is attempted from
	// a state that does not permit it.
	ErrInvalidState = errors.New("invalid status transition")

	// ErrValidation wraps boundary validation failures; the wrapping message
	// names the offending field.
	ErrValidation = errors.New("validation failed")

	ErrEmptyReason            = errors.New("rejection reason must not be blank")
	ErrInvalidDonationStatus  = errors.New("invalid donation status")
	ErrBeneficiaryNotEligible = errors.New("beneficiary is not verified")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession and ErrInvalidSession are distinct so callers can choose
	// between prompting a login and reporting a hard failure.
	ErrNoSession      = errors.New("no session token provided")
	ErrInvalidSession = errors.New("session unknown, expired, or revoked")
)
