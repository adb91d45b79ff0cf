package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/samber/lo"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

type createLinkRequest struct {
	Title string `json:"title" validate:"required,min=4"`
	URL   string `json:"url" validate:"required,url"`
}

type linkIDResponse struct {
	LinkID openapi_types.UUID `json:"linkId"`
}

type linkResponse struct {
	ID    openapi_types.UUID `json:"id"`
	Title string             `json:"title"`
	URL   string             `json:"url"`
}

type linksResponse struct {
	Links []linkResponse `json:"links"`
}

// CreateLink handles POST /trips/{tripId}/links.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}
	var body createLinkRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	created, err := s.links.Create(r.Context(), domain.Link{TripID: tripID, Title: body.Title, URL: body.URL})
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusCreated, linkIDResponse{LinkID: created.ID})
}

// ListLinks handles GET /trips/{tripId}/links.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	links, err := s.links.ListByTrip(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusOK, linksResponse{
		Links: lo.Map(links, func(l domain.Link, _ int) linkResponse {
			return linkResponse{ID: l.ID, Title: l.Title, URL: l.URL}
		}),
	})
}
