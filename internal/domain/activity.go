package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something scheduled to happen during a trip.
// OccursAt always lies within the parent trip's [StartsAt, EndsAt].
type Activity struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	OccursAt  time.Time
	CreatedAt time.Time
}

// DayActivities groups the activities that fall on one calendar day of a trip.
// Date is midnight of that day in the service's configured location.
type DayActivities struct {
	Date       time.Time
	Activities []Activity
}
