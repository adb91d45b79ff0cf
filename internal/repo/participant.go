package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// psql builds Postgres-flavoured ($1, $2, …) statements for the queries whose
// WHERE clause depends on optional filters.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ParticipantRepo defines the persistence operations for Participants.
type ParticipantRepo interface {
	// Create inserts a participant and returns the persisted record.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// GetByID retrieves a single participant by its UUID.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// List returns the participants of filter.TripID matching the optional
	// filters, owner first, then in creation order.
	List(ctx context.Context, filter domain.ParticipantFilter) ([]domain.Participant, error)

	// Confirm flips is_confirmed from false to true.
	// Returns domain.ErrNotFound if the participant does not exist and
	// domain.ErrAlreadyConfirmed if it was already confirmed.
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

var participantColumns = []string{"id", "trip_id", "name", "email", "is_owner", "is_confirmed", "created_at"}

const participantReturning = `id, trip_id, name, email, is_owner, is_confirmed, created_at`

func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	result, err := insertParticipant(ctx, r.db, p)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `SELECT ` + participantReturning + ` FROM participants WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) List(ctx context.Context, filter domain.ParticipantFilter) ([]domain.Participant, error) {
	query := psql.
		Select(participantColumns...).
		From("participants").
		Where(squirrel.Eq{"trip_id": filter.TripID}).
		OrderBy("is_owner DESC", "created_at ASC", "id ASC")
	if filter.IsOwner != nil {
		query = query.Where(squirrel.Eq{"is_owner": *filter.IsOwner})
	}
	if filter.IsConfirmed != nil {
		query = query.Where(squirrel.Eq{"is_confirmed": *filter.IsConfirmed})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.List: build: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.List: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.List: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.List: rows: %w", err)
	}
	return participants, nil
}

// Confirm uses the same conditional-update pattern as pgTripRepo.Confirm.
func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `
		UPDATE participants
		SET is_confirmed = true
		WHERE id = @id AND is_confirmed = false
		RETURNING ` + participantReturning

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanParticipant(row)
	if errors.Is(err, domain.ErrNotFound) {
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", lookupErr)
		}
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", domain.ErrAlreadyConfirmed)
	}
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	return result, nil
}

// insertParticipant is shared by ParticipantRepo.Create and the trip
// creation transaction, which passes its pgx.Tx as q.
func insertParticipant(ctx context.Context, q db, p domain.Participant) (domain.Participant, error) {
	const stmt = `
		INSERT INTO participants (trip_id, name, email, is_owner, is_confirmed)
		VALUES (@trip_id, @name, @email, @is_owner, @is_confirmed)
		RETURNING ` + participantReturning

	row := q.QueryRow(ctx, stmt, pgx.NamedArgs{
		"trip_id":      p.TripID,
		"name":         p.Name,
		"email":        p.Email,
		"is_owner":     p.IsOwner,
		"is_confirmed": p.IsConfirmed,
	})
	return scanParticipant(row)
}

// scanParticipant maps a single database row into a domain.Participant.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &p.Name, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
