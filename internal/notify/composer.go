package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// emailData is the view model shared by both templates.
type emailData struct {
	Destination string
	StartDate   string
	Dates       string
	ConfirmURL  string
}

// Composer renders the workflow's emails. Dates are shown in loc.
type Composer struct {
	from  Address
	links Links
	loc   *time.Location
}

// NewComposer returns a Composer sending from the given address.
func NewComposer(from Address, links Links, loc *time.Location) *Composer {
	return &Composer{from: from, links: links, loc: loc}
}

// TripConfirmation is sent to the owner right after a trip is created.
func (c *Composer) TripConfirmation(trip domain.Trip, owner domain.Participant) (Message, error) {
	data := c.data(trip, c.links.TripConfirm(trip.ID))
	html, err := render("trip_confirmation.html", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.from,
		To:      []Address{{Name: owner.Name, Address: owner.Email}},
		Subject: fmt.Sprintf("Confirm your trip to %s on %s", trip.Destination, data.StartDate),
		HTML:    html,
	}, nil
}

// ParticipantInvitation is sent to an invitee once the trip is confirmed,
// or straight away when someone is invited to an already planned trip.
func (c *Composer) ParticipantInvitation(trip domain.Trip, p domain.Participant) (Message, error) {
	data := c.data(trip, c.links.ParticipantConfirm(p.ID))
	html, err := render("participant_invitation.html", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.from,
		To:      []Address{{Name: p.Name, Address: p.Email}},
		Subject: fmt.Sprintf("Confirm your attendance on the trip to %s on %s", trip.Destination, data.StartDate),
		HTML:    html,
	}, nil
}

func (c *Composer) data(trip domain.Trip, confirmURL string) emailData {
	return emailData{
		Destination: trip.Destination,
		StartDate:   calendar.FormatLong(trip.StartsAt, c.loc),
		Dates:       calendar.FormatRange(trip.StartsAt, trip.EndsAt, c.loc),
		ConfirmURL:  confirmURL,
	}
}

func render(name string, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
