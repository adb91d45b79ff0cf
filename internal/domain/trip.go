// Package domain contains the core data types for the Trip Planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level travel plan. Participants, activities and links
// all belong to a trip.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTrip carries everything needed to plan a trip: the trip itself, the
// owner who is planning it, and the addresses to invite.
type NewTrip struct {
	Destination  string
	StartsAt     time.Time
	EndsAt       time.Time
	OwnerName    string
	OwnerEmail   string
	EmailsInvite []string
}
