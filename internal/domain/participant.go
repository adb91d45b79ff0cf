package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person attached to a trip. The owner is created already
// confirmed; invitees start unconfirmed and with an empty name.
type Participant struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        string
	Email       string
	IsOwner     bool
	IsConfirmed bool
	CreatedAt   time.Time
}

// ParticipantFilter narrows a participant listing. Nil pointers mean
// "don't filter on this column".
type ParticipantFilter struct {
	TripID      uuid.UUID
	IsOwner     *bool
	IsConfirmed *bool
}
