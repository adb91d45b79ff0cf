package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ActivityService schedules activities inside a trip's date range.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	loc        *time.Location
}

// NewActivityService constructs an ActivityService. loc decides where one
// calendar day ends and the next begins when grouping activities.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo, loc *time.Location) *ActivityService {
	return &ActivityService{trips: trips, activities: activities, loc: loc}
}

// Create schedules an activity. OccursAt must fall within the trip's
// [StartsAt, EndsAt] range, both ends inclusive.
// Returns domain.ErrNotFound, domain.ErrValidation or domain.ErrInvalidSchedule.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, a.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateText("title", a.Title); err != nil {
		return domain.Activity{}, err
	}
	if !calendar.Within(a.OccursAt, trip.StartsAt, trip.EndsAt) {
		return domain.Activity{}, fmt.Errorf("%w: activity must occur between the trip start and end dates", domain.ErrInvalidSchedule)
	}

	created, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// ListByDay returns one bucket per calendar day of the trip, first day to
// last, each holding that day's activities in chronological order. Days
// without activities are included with an empty list.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	return groupByDay(trip, activities, s.loc), nil
}

// groupByDay buckets activities by the local calendar day they occur on.
// A trip spanning N calendar-day boundaries yields N+1 buckets.
func groupByDay(trip domain.Trip, activities []domain.Activity, loc *time.Location) []domain.DayActivities {
	start := calendar.StartOfDay(trip.StartsAt, loc)
	days := calendar.DiffDays(trip.StartsAt, trip.EndsAt, loc)
	if days < 0 {
		return []domain.DayActivities{}
	}

	sorted := append([]domain.Activity(nil), activities...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccursAt.Before(sorted[j].OccursAt)
	})

	out := make([]domain.DayActivities, 0, days+1)
	for i := 0; i <= days; i++ {
		date := calendar.AddDays(start, i)
		out = append(out, domain.DayActivities{
			Date: date,
			Activities: lo.Filter(sorted, func(a domain.Activity, _ int) bool {
				return calendar.SameDay(a.OccursAt, date, loc)
			}),
		})
	}
	return out
}
