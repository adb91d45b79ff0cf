package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings of an SMTP relay.
// Username empty means no authentication (e.g. a local Mailpit).
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer delivers messages through an SMTP relay using go-mail.
// A client is dialled per Send, so concurrent sends share no connection state.
type SMTPMailer struct {
	host string
	opts []mail.Option
}

// NewSMTPMailer validates cfg and returns a mailer for it. No connection is
// opened until the first Send.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("notify.NewSMTPMailer: host is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	// Build once up front so bad options fail at startup rather than on first send.
	if _, err := mail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("notify.NewSMTPMailer: %w", err)
	}
	return &SMTPMailer{host: cfg.Host, opts: opts}, nil
}

// Send builds a MIME message from msg and delivers it.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) (Receipt, error) {
	gm, err := buildMsg(msg)
	if err != nil {
		return Receipt{}, fmt.Errorf("notify.SMTPMailer.Send: %w", err)
	}

	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return Receipt{}, fmt.Errorf("notify.SMTPMailer.Send: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, gm); err != nil {
		return Receipt{}, fmt.Errorf("notify.SMTPMailer.Send: %w", err)
	}

	return Receipt{MessageID: messageID(gm)}, nil
}

// buildMsg maps a Message onto a go-mail Msg with a generated Message-ID.
func buildMsg(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("message has no recipients")
	}

	gm := mail.NewMsg()
	if err := gm.FromFormat(msg.From.Name, msg.From.Address); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	for _, to := range msg.To {
		if err := gm.AddToFormat(to.Name, to.Address); err != nil {
			return nil, fmt.Errorf("to %q: %w", to.Address, err)
		}
	}
	gm.Subject(msg.Subject)
	gm.SetBodyString(mail.TypeTextHTML, msg.HTML)
	gm.SetMessageID()
	gm.SetDate()
	return gm, nil
}

func messageID(gm *mail.Msg) string {
	if ids := gm.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		return ids[0]
	}
	return ""
}
