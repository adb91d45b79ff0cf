package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/notify"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset one panics, which fails the test.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, ps []domain.Participant) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, ps []domain.Participant) (domain.Trip, error) {
	return m.create(ctx, trip, ps)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.confirm(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockParticipantRepo struct {
	create  func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	list    func(ctx context.Context, f domain.ParticipantFilter) ([]domain.Participant, error)
	confirm func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
}

func (m *mockParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantRepo) List(ctx context.Context, f domain.ParticipantFilter) ([]domain.Participant, error) {
	return m.list(ctx, f)
}
func (m *mockParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.confirm(ctx, id)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockLinkRepo struct {
	create       func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.LinkRepo = (*mockLinkRepo)(nil)

// recordingMailer keeps every message it is asked to send. Sends to an
// address listed in failFor return an error instead, and so does any send
// on a context that is already done, the way a real SMTP dial would.
type recordingMailer struct {
	mu      sync.Mutex
	sent    []notify.Message
	failFor map[string]bool
}

func (m *recordingMailer) Send(ctx context.Context, msg notify.Message) (notify.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return notify.Receipt{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, to := range msg.To {
		if m.failFor[to.Address] {
			return notify.Receipt{}, errors.New("smtp: 550 mailbox unavailable")
		}
	}
	m.sent = append(m.sent, msg)
	return notify.Receipt{MessageID: uuid.NewString()}, nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, msg := range m.sent {
		for _, to := range msg.To {
			out = append(out, to.Address)
		}
	}
	return out
}

var _ notify.Mailer = (*recordingMailer)(nil)

// ---- helpers ---------------------------------------------------------------

// fixedNow is the wall clock every service test runs at.
var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newNotifier(t *testing.T, mailer notify.Mailer) *service.Notifier {
	t.Helper()
	return newNotifierLogging(t, mailer, io.Discard)
}

func newNotifierLogging(t *testing.T, mailer notify.Mailer, logs io.Writer) *service.Notifier {
	t.Helper()
	links, err := notify.NewLinks("http://localhost:3333")
	require.NoError(t, err)
	composer := notify.NewComposer(notify.Address{Name: "Trip Planner", Address: "no-reply@trip-planner.local"}, links, time.UTC)
	return service.NewNotifier(mailer, composer, slog.New(slog.NewJSONHandler(logs, nil)))
}

// plannedTrip is a five-day, unconfirmed trip starting after fixedNow.
func plannedTrip() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Destination: "Lisbon",
		StartsAt:    time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, 4, 14, 20, 0, 0, 0, time.UTC),
	}
}

func tripRepoReturning(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}

func missingTripRepo() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
}
