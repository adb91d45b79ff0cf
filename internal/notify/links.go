package notify

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Links builds the confirmation URLs embedded in emails. The URLs point at
// this API's own confirm endpoints.
type Links struct {
	base string
}

// NewLinks validates baseURL (scheme and host required) and returns a Links.
func NewLinks(baseURL string) (Links, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Links{}, fmt.Errorf("notify.NewLinks: invalid base URL %q", baseURL)
	}
	return Links{base: baseURL}, nil
}

// TripConfirm returns the link the owner follows to confirm a trip.
func (l Links) TripConfirm(tripID uuid.UUID) string {
	return l.join("trips", tripID.String(), "confirm")
}

// ParticipantConfirm returns the link an invitee follows to confirm attendance.
func (l Links) ParticipantConfirm(participantID uuid.UUID) string {
	return l.join("participants", participantID.String(), "confirm")
}

func (l Links) join(elem ...string) string {
	// base was validated by NewLinks, JoinPath cannot fail.
	s, _ := url.JoinPath(l.base, elem...)
	return s
}
