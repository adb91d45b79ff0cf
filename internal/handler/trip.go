package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const subjectTrip subject = "trip"

type createTripRequest struct {
	Destination  string    `json:"destination" validate:"required,min=4"`
	StartsAt     Timestamp `json:"starts_at" validate:"required"`
	EndsAt       Timestamp `json:"ends_at" validate:"required"`
	OwnerName    string    `json:"owner_name" validate:"required,min=4"`
	OwnerEmail   string    `json:"owner_email" validate:"required,email"`
	EmailsInvite []string  `json:"emails_invite" validate:"dive,required,email"`
}

type updateTripRequest struct {
	Destination string    `json:"destination" validate:"required,min=4"`
	StartsAt    Timestamp `json:"starts_at" validate:"required"`
	EndsAt      Timestamp `json:"ends_at" validate:"required"`
}

type tripIDResponse struct {
	TripID openapi_types.UUID `json:"tripId"`
}

type tripResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Destination string             `json:"destination"`
	StartsAt    time.Time          `json:"starts_at"`
	EndsAt      time.Time          `json:"ends_at"`
	IsConfirmed bool               `json:"is_confirmed"`
}

type tripEnvelope struct {
	Trip tripResponse `json:"trip"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body createTripRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	created, err := s.trips.Create(r.Context(), domain.NewTrip{
		Destination:  body.Destination,
		StartsAt:     body.StartsAt.Time,
		EndsAt:       body.EndsAt.Time,
		OwnerName:    body.OwnerName,
		OwnerEmail:   body.OwnerEmail,
		EmailsInvite: body.EmailsInvite,
	})
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripIDResponse{TripID: created.ID})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusOK, tripEnvelope{Trip: tripToResponse(trip)})
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}
	var body updateTripRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), domain.Trip{
		ID:          id,
		Destination: body.Destination,
		StartsAt:    body.StartsAt.Time,
		EndsAt:      body.EndsAt.Time,
	})
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusOK, tripIDResponse{TripID: updated.ID})
}

// ConfirmTrip handles GET /trips/{tripId}/confirm, the link emailed to the
// owner. Invitations go out to every other participant before it responds.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	confirmed, err := s.trips.Confirm(r.Context(), id)
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripIDResponse{TripID: confirmed.ID})
}

// tripToResponse converts a domain.Trip into its wire form.
func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt.UTC(),
		EndsAt:      t.EndsAt.UTC(),
		IsConfirmed: t.IsConfirmed,
	}
}
