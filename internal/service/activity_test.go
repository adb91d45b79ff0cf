package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func echoActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			a.ID = uuid.New()
			return a, nil
		},
	}
}

func activityAt(tripID uuid.UUID, title string, at time.Time) domain.Activity {
	return domain.Activity{ID: uuid.New(), TripID: tripID, Title: title, OccursAt: at}
}

// ---- Create tests ----------------------------------------------------------

func TestActivityService_Create_Range(t *testing.T) {
	trip := plannedTrip()
	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at trip start", trip.StartsAt, nil},
		{"at trip end", trip.EndsAt, nil},
		{"mid trip", trip.StartsAt.Add(30 * time.Hour), nil},
		{"before start", trip.StartsAt.Add(-time.Second), domain.ErrInvalidSchedule},
		{"after end", trip.EndsAt.Add(time.Second), domain.ErrInvalidSchedule},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewActivityService(tripRepoReturning(trip), echoActivityRepo(), time.UTC)

			got, err := svc.Create(context.Background(), domain.Activity{TripID: trip.ID, Title: "Museum visit", OccursAt: tc.at})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestActivityService_Create_ShortTitle(t *testing.T) {
	trip := plannedTrip()
	svc := service.NewActivityService(tripRepoReturning(trip), echoActivityRepo(), time.UTC)

	_, err := svc.Create(context.Background(), domain.Activity{TripID: trip.ID, Title: "Zoo", OccursAt: trip.StartsAt})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_UnknownTrip(t *testing.T) {
	svc := service.NewActivityService(missingTripRepo(), echoActivityRepo(), time.UTC)

	_, err := svc.Create(context.Background(), domain.Activity{TripID: uuid.New(), Title: "Museum visit", OccursAt: fixedNow})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListByDay tests -------------------------------------------------------

func TestActivityService_ListByDay(t *testing.T) {
	trip := plannedTrip() // Apr 10 08:00 to Apr 14 20:00 UTC
	day := func(d, h int) time.Time { return time.Date(2026, 4, d, h, 0, 0, 0, time.UTC) }
	activities := []domain.Activity{
		activityAt(trip.ID, "Dinner at Ramiro", day(10, 21)),
		activityAt(trip.ID, "Tram 28", day(10, 9)),
		activityAt(trip.ID, "Sintra day trip", day(12, 8)),
		activityAt(trip.ID, "Flight home", day(14, 20)),
	}
	repo := &mockActivityRepo{
		listByTripID: func(context.Context, uuid.UUID) ([]domain.Activity, error) { return activities, nil },
	}
	svc := service.NewActivityService(tripRepoReturning(trip), repo, time.UTC)

	got, err := svc.ListByDay(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, bucket := range got {
		assert.Equal(t, day(10+i, 0), bucket.Date)
		assert.NotNil(t, bucket.Activities)
	}

	titles := func(as []domain.Activity) []string {
		out := []string{}
		for _, a := range as {
			out = append(out, a.Title)
		}
		return out
	}
	assert.Equal(t, []string{"Tram 28", "Dinner at Ramiro"}, titles(got[0].Activities))
	assert.Empty(t, got[1].Activities)
	assert.Equal(t, []string{"Sintra day trip"}, titles(got[2].Activities))
	assert.Empty(t, got[3].Activities)
	assert.Equal(t, []string{"Flight home"}, titles(got[4].Activities))
}

func TestActivityService_ListByDay_TimezoneMovesDayBoundary(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC on Apr 11 is still Apr 10 in Sao Paulo (UTC-3).
	trip := plannedTrip()
	late := activityAt(trip.ID, "Fado night", time.Date(2026, 4, 11, 1, 30, 0, 0, time.UTC))
	repo := &mockActivityRepo{
		listByTripID: func(context.Context, uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{late}, nil
		},
	}
	svc := service.NewActivityService(tripRepoReturning(trip), repo, saoPaulo)

	got, err := svc.ListByDay(context.Background(), trip.ID)

	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, saoPaulo), got[0].Date)
	require.Len(t, got[0].Activities, 1)
	assert.Equal(t, "Fado night", got[0].Activities[0].Title)
}

func TestActivityService_ListByDay_SingleDayTrip(t *testing.T) {
	trip := plannedTrip()
	trip.EndsAt = trip.StartsAt
	repo := &mockActivityRepo{
		listByTripID: func(context.Context, uuid.UUID) ([]domain.Activity, error) { return nil, nil },
	}
	svc := service.NewActivityService(tripRepoReturning(trip), repo, time.UTC)

	got, err := svc.ListByDay(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Activities)
}

func TestActivityService_ListByDay_PartialLastDayStillGetsBucket(t *testing.T) {
	// Less than 48 hours, but it touches three calendar days.
	trip := plannedTrip()
	trip.StartsAt = time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	trip.EndsAt = time.Date(2026, 4, 12, 8, 0, 0, 0, time.UTC)
	breakfast := activityAt(trip.ID, "Last breakfast", time.Date(2026, 4, 12, 7, 0, 0, 0, time.UTC))
	repo := &mockActivityRepo{
		listByTripID: func(context.Context, uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{breakfast}, nil
		},
	}
	svc := service.NewActivityService(tripRepoReturning(trip), repo, time.UTC)

	got, err := svc.ListByDay(context.Background(), trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC), got[2].Date)
	require.Len(t, got[2].Activities, 1)
	assert.Equal(t, "Last breakfast", got[2].Activities[0].Title)
}

func TestActivityService_ListByDay_UnknownTrip(t *testing.T) {
	svc := service.NewActivityService(missingTripRepo(), &mockActivityRepo{}, time.UTC)

	_, err := svc.ListByDay(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Every in-range activity lands in exactly one bucket, buckets are
// consecutive days, and their count is the trip's day span plus one.
func TestActivityService_ListByDay_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("buckets partition the trip's activities", prop.ForAll(
		func(startMin, spanMin int, offsets []int) bool {
			trip := domain.Trip{
				ID:       uuid.New(),
				StartsAt: base.Add(time.Duration(startMin) * time.Minute),
			}
			trip.EndsAt = trip.StartsAt.Add(time.Duration(spanMin) * time.Minute)

			activities := make([]domain.Activity, 0, len(offsets))
			for _, off := range offsets {
				at := trip.StartsAt.Add(time.Duration(off%(spanMin+1)) * time.Minute)
				activities = append(activities, activityAt(trip.ID, "Generated", at))
			}
			repo := &mockActivityRepo{
				listByTripID: func(context.Context, uuid.UUID) ([]domain.Activity, error) { return activities, nil },
			}
			svc := service.NewActivityService(tripRepoReturning(trip), repo, time.UTC)

			buckets, err := svc.ListByDay(context.Background(), trip.ID)
			if err != nil {
				return false
			}

			startDay := time.Date(trip.StartsAt.Year(), trip.StartsAt.Month(), trip.StartsAt.Day(), 0, 0, 0, 0, time.UTC)
			endDay := time.Date(trip.EndsAt.Year(), trip.EndsAt.Month(), trip.EndsAt.Day(), 0, 0, 0, 0, time.UTC)
			if len(buckets) != int(endDay.Sub(startDay).Hours()/24)+1 {
				return false
			}

			total := 0
			for i, b := range buckets {
				if !b.Date.Equal(startDay.AddDate(0, 0, i)) {
					return false
				}
				for j, a := range b.Activities {
					if a.OccursAt.Before(b.Date) || !a.OccursAt.Before(b.Date.AddDate(0, 0, 1)) {
						return false
					}
					if j > 0 && a.OccursAt.Before(b.Activities[j-1].OccursAt) {
						return false
					}
				}
				total += len(b.Activities)
			}
			return total == len(activities)
		},
		gen.IntRange(0, 24*60),
		gen.IntRange(0, 10*24*60),
		gen.SliceOf(gen.IntRange(0, 1<<20)),
	))

	properties.TestingRun(t)
}
