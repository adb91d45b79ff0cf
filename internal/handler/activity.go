package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/samber/lo"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

type createActivityRequest struct {
	Title    string    `json:"title" validate:"required,min=4"`
	OccursAt Timestamp `json:"occurs_at" validate:"required"`
}

type activityIDResponse struct {
	ActivityID openapi_types.UUID `json:"activityId"`
}

type activityResponse struct {
	ID       openapi_types.UUID `json:"id"`
	Title    string             `json:"title"`
	OccursAt time.Time          `json:"occurs_at"`
}

type dayResponse struct {
	Date       time.Time          `json:"date"`
	Activities []activityResponse `json:"activities"`
}

type activitiesResponse struct {
	Activities []dayResponse `json:"activities"`
}

// CreateActivity handles POST /trips/{tripId}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}
	var body createActivityRequest
	if err := s.decode(r, &body); err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	created, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    body.Title,
		OccursAt: body.OccursAt.Time,
	})
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusCreated, activityIDResponse{ActivityID: created.ID})
}

// ListActivities handles GET /trips/{tripId}/activities.
// The response has one entry per day of the trip, empty days included.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	days, err := s.activities.ListByDay(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, subjectTrip, err)
		return
	}

	writeJSON(w, http.StatusOK, activitiesResponse{
		Activities: lo.Map(days, func(d domain.DayActivities, _ int) dayResponse {
			return dayResponse{
				Date: d.Date,
				Activities: lo.Map(d.Activities, func(a domain.Activity, _ int) activityResponse {
					return activityResponse{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt.UTC()}
				}),
			}
		}),
	})
}
