package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/samber/lo"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const subjectParticipant subject = "participant"

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type participantIDResponse struct {
	ParticipantID openapi_types.UUID `json:"participantId"`
}

type participantResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Name        *string            `json:"name"`
	Email       string             `json:"email"`
	IsOwner     bool               `json:"is_owner"`
	IsConfirmed bool               `json:"is_confirmed"`
}

type participantEnvelope struct {
	Participant participantResponse `json:"participant"`
}

type participantsResponse struct {
	Participants []participantResponse `json:"participants"`
}

// GetParticipant handles GET /participants/{participantId}.
func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.writeError(w, r, subjectParticipant, err)
		return
	}

	p, err := s.participants.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, subjectParticipant, err)
		return
	}

	writeJSON(w, http.StatusOK, participantEnvelope{Participant: participantToResponse(p)})
}

// ConfirmParticipant handles GET /participants/{participantId}/confirm, the
// link emailed to each invitee.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		s.writeError(w, r, subjectParticipant, err)
		return
	}

	p, err := s.participants.Confirm(r.Context(), id)
	if err != nil {
		s.writeError(w, r, subjectParticipant, err)
		return
	}

	writeJSON(w, http.StatusCreated, participantIDResponse{ParticipantID: p.ID})
}

// ListParticipants handles GET /trips/{tripId}/participants.
// Supports optional ?is_owner= and ?is_confirmed= filters.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}
	filter := domain.ParticipantFilter{TripID: tripID}
	if filter.IsOwner, err = queryBool(r, "is_owner"); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}
	if filter.IsConfirmed, err = queryBool(r, "is_confirmed"); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	ps, err := s.participants.ListByTrip(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusOK, participantsResponse{
		Participants: lo.Map(ps, func(p domain.Participant, _ int) participantResponse {
			return participantToResponse(p)
		}),
	})
}

// CreateInvite handles POST /trips/{tripId}/invites.
func (s *Server) CreateInvite(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}
	var body inviteRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	p, err := s.participants.Invite(r.Context(), tripID, body.Email)
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusCreated, participantIDResponse{ParticipantID: p.ID})
}

// participantToResponse converts a domain.Participant into its wire form.
// Invitees have no name until they provide one, reported as null.
func participantToResponse(p domain.Participant) participantResponse {
	resp := participantResponse{
		ID:          p.ID,
		Email:       p.Email,
		IsOwner:     p.IsOwner,
		IsConfirmed: p.IsConfirmed,
	}
	if p.Name != "" {
		resp.Name = &p.Name
	}
	return resp
}
