// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo
// and notification calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// minTextLength is the minimum length, in characters, of destinations,
// activity titles, link titles and owner names.
const minTextLength = 4

// maxTripSpan is the longest trip that can be planned. It keeps the per-day
// activity listing to a few thousand entries.
const maxTripSpan = 5 * 366 * 24 * time.Hour

// TripService implements the trip lifecycle: planning, rescheduling and
// confirmation.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	notifier     *Notifier
	now          func() time.Time
}

// NewTripService constructs a TripService. now is the wall clock used to
// reject trips starting in the past; pass time.Now in production.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, notifier *Notifier, now func() time.Time) *TripService {
	return &TripService{trips: trips, participants: participants, notifier: notifier, now: now}
}

// Create validates the new trip, persists it with its owner and invitees,
// and emails the owner a confirmation link.
// Every check runs before the first write, so a rejected trip never exists.
// Returns domain.ErrValidation or domain.ErrInvalidSchedule for bad input.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	if err := validateText("destination", in.Destination); err != nil {
		return domain.Trip{}, err
	}
	if err := validateText("owner name", in.OwnerName); err != nil {
		return domain.Trip{}, err
	}
	if strings.TrimSpace(in.OwnerEmail) == "" {
		return domain.Trip{}, fmt.Errorf("%w: owner email is required", domain.ErrValidation)
	}
	if err := s.validateSchedule(in.StartsAt, in.EndsAt); err != nil {
		return domain.Trip{}, err
	}

	owner := domain.Participant{
		Name:        in.OwnerName,
		Email:       in.OwnerEmail,
		IsOwner:     true,
		IsConfirmed: true,
	}
	invitees := lo.Map(lo.Uniq(in.EmailsInvite), func(email string, _ int) domain.Participant {
		return domain.Participant{Email: email}
	})

	trip := domain.Trip{
		Destination: in.Destination,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}
	created, err := s.trips.Create(ctx, trip, append([]domain.Participant{owner}, invitees...))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	// Logged by the notifier; the trip stands even if the email does not.
	_ = s.notifier.TripCreated(ctx, created, owner)

	return created, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Update reschedules an existing trip and may change its destination.
// Returns domain.ErrNotFound, domain.ErrValidation or domain.ErrInvalidSchedule.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if _, err := s.trips.GetByID(ctx, trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := validateText("destination", trip.Destination); err != nil {
		return domain.Trip{}, err
	}
	if err := s.validateSchedule(trip.StartsAt, trip.EndsAt); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Confirm marks the trip confirmed and invites every non-owner participant
// by email, waiting until all sends have finished.
// Returns domain.ErrNotFound or domain.ErrAlreadyConfirmed.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", domain.ErrAlreadyConfirmed)
	}

	confirmed, err := s.trips.Confirm(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	// The confirmation is committed and cannot be repeated, so the invitations
	// it owes go out even if the caller stops waiting.
	ctx = context.WithoutCancel(ctx)
	invitees, err := s.participants.List(ctx, domain.ParticipantFilter{TripID: id, IsOwner: lo.ToPtr(false)})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: list participants: %w", err)
	}
	s.notifier.InviteAll(ctx, confirmed, invitees)

	return confirmed, nil
}

// validateSchedule enforces the trip date rules shared by Create and Update.
//   - StartsAt must not be before now.
//   - EndsAt must not be before StartsAt (a same-instant trip is allowed).
//   - The trip must not last longer than maxTripSpan.
func (s *TripService) validateSchedule(startsAt, endsAt time.Time) error {
	if calendar.IsBefore(startsAt, s.now()) {
		return fmt.Errorf("%w: trip start date must not be in the past", domain.ErrInvalidSchedule)
	}
	if calendar.IsAfter(startsAt, endsAt) {
		return fmt.Errorf("%w: trip end date must not be before its start date", domain.ErrInvalidSchedule)
	}
	// Sub saturates rather than overflows, so far-apart dates still exceed the cap.
	if endsAt.Sub(startsAt) > maxTripSpan {
		return fmt.Errorf("%w: trip must not last longer than five years", domain.ErrInvalidSchedule)
	}
	return nil
}

// validateText rejects values shorter than minTextLength characters once
// surrounding whitespace is trimmed.
func validateText(field, value string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minTextLength {
		return fmt.Errorf("%w: %s must be at least %d characters", domain.ErrValidation, field, minTextLength)
	}
	return nil
}
