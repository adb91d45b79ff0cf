package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ParticipantService manages the people attached to a trip.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	notifier     *Notifier
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo, notifier *Notifier) *ParticipantService {
	return &ParticipantService{trips: trips, participants: participants, notifier: notifier}
}

// GetByID returns a single participant.
// Returns domain.ErrNotFound if it does not exist.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return p, nil
}

// ListByTrip returns the trip's participants, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ParticipantService) ListByTrip(ctx context.Context, filter domain.ParticipantFilter) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, filter.TripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTrip: %w", err)
	}
	ps, err := s.participants.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTrip: %w", err)
	}
	return ps, nil
}

// Confirm records that the participant will attend.
// Returns domain.ErrNotFound or domain.ErrAlreadyConfirmed.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if p.IsConfirmed {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", domain.ErrAlreadyConfirmed)
	}
	confirmed, err := s.participants.Confirm(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	return confirmed, nil
}

// Invite adds a new unconfirmed participant to the trip and emails them
// their confirmation link.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	if strings.TrimSpace(email) == "" {
		return domain.Participant{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	p, err := s.participants.Create(ctx, domain.Participant{TripID: tripID, Email: email})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	_ = s.notifier.Invite(ctx, trip, p)

	return p, nil
}
