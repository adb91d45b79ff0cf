package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogMailer writes messages to a slog.Logger instead of sending them.
// It is the default when no SMTP host is configured, so local development
// can follow confirmation links straight from the server log.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer returns a Mailer that logs through log.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (Receipt, error) {
	receipt := Receipt{MessageID: "<" + uuid.NewString() + "@log.mailer>"}
	m.log.InfoContext(ctx, "email",
		"message_id", receipt.MessageID,
		"from", msg.From.String(),
		"to", msg.Recipients(),
		"subject", msg.Subject,
		"html", msg.HTML,
	)
	return receipt, nil
}
