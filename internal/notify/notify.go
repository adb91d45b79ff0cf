// Package notify sends the transactional emails of the trip workflow.
// Composer turns domain records into Messages; a Mailer delivers them.
package notify

import (
	"context"
	"strings"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name    string
	Address string
}

// String renders the address as `Name <addr>` or just `addr`.
func (a Address) String() string {
	if a.Name == "" {
		return a.Address
	}
	return a.Name + " <" + a.Address + ">"
}

// Message is one HTML email. To may hold several recipients, in which case
// every recipient sees the same body.
type Message struct {
	From    Address
	To      []Address
	Subject string
	HTML    string
}

// Recipients returns the To addresses joined with ", ", for logging.
func (m Message) Recipients() string {
	parts := make([]string, len(m.To))
	for i, to := range m.To {
		parts[i] = to.Address
	}
	return strings.Join(parts, ", ")
}

// Receipt identifies a delivered message.
type Receipt struct {
	MessageID string
}

// Mailer delivers a Message. Implementations must be safe for concurrent use:
// trip confirmation sends one message per invitee in parallel.
type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
