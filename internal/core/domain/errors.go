package domain

import "errors"

// Business-rule rejections. These are expected outcomes callers inspect
// with errors.Is; anything else bubbling out of the service is an
// infrastructure failure.
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrPastDate         = errors.New("check-in date is in the past")
	ErrMinimumStay      = errors.New("stay must be at least one night")
	ErrRoomUnavailable  = errors.New("room is unavailable for the selected dates")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrNotPending       = errors.New("booking is not pending")
	ErrHoldExpired      = errors.New("booking hold has expired")
	ErrInvalidGuests    = errors.New("invalid guest composition")
	ErrCapacityExceeded = errors.New("guest count exceeds listing capacity")
	ErrInvalidContact   = errors.New("contact information is incomplete")
)
