package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip or participant does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyConfirmed is returned when confirming a trip or participant
// whose is_confirmed flag is already set. Confirmation happens once.
var ErrAlreadyConfirmed = errors.New("already confirmed")

// ErrInvalidSchedule is returned when timestamps violate ordering rules:
// a trip starting in the past, ending before it starts, or an activity
// outside its trip's date range.
var ErrInvalidSchedule = errors.New("invalid schedule")

// ErrValidation is returned when input is malformed or too short
// (e.g. a destination under four characters or a bad email address).
var ErrValidation = errors.New("validation error")
