package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/notify"
)

// sendTimeout bounds one Notifier call, including a whole fan-out.
const sendTimeout = 2 * time.Minute

// Notifier sends the workflow's emails. Delivery is at-most-effort: every
// send is attempted once, failures are logged here and reported back only
// as counts, and no caller fails a request because an email did not go out.
//
// Sends are detached from the caller's cancellation. They follow a committed
// write, and a client hanging up must not drop the emails that write owes.
type Notifier struct {
	mailer   notify.Mailer
	composer *notify.Composer
	log      *slog.Logger
}

// NewNotifier constructs a Notifier.
func NewNotifier(mailer notify.Mailer, composer *notify.Composer, log *slog.Logger) *Notifier {
	return &Notifier{mailer: mailer, composer: composer, log: log}
}

// BatchResult summarises a fan-out send.
type BatchResult struct {
	Attempted int
	Failed    int
}

// TripCreated emails the owner the trip confirmation link.
func (n *Notifier) TripCreated(ctx context.Context, trip domain.Trip, owner domain.Participant) error {
	ctx, cancel := detach(ctx)
	defer cancel()

	msg, err := n.composer.TripConfirmation(trip, owner)
	if err != nil {
		return n.fail(ctx, err, "trip_id", trip.ID)
	}
	return n.send(ctx, msg, "trip_id", trip.ID)
}

// Invite emails one participant their personal confirmation link.
func (n *Notifier) Invite(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	ctx, cancel := detach(ctx)
	defer cancel()
	return n.invite(ctx, trip, p)
}

func (n *Notifier) invite(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	msg, err := n.composer.ParticipantInvitation(trip, p)
	if err != nil {
		return n.fail(ctx, err, "trip_id", trip.ID, "participant_id", p.ID)
	}
	return n.send(ctx, msg, "trip_id", trip.ID, "participant_id", p.ID)
}

// InviteAll sends Invite to every participant concurrently and waits for all
// of them. One failed send never cancels the others.
func (n *Notifier) InviteAll(ctx context.Context, trip domain.Trip, participants []domain.Participant) BatchResult {
	ctx, cancel := detach(ctx)
	defer cancel()

	var (
		g      errgroup.Group
		failed atomic.Int64
	)
	for _, p := range participants {
		p := p
		g.Go(func() error {
			if err := n.invite(ctx, trip, p); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	res := BatchResult{Attempted: len(participants), Failed: int(failed.Load())}
	if err != nil {
		n.log.WarnContext(ctx, "invitations partially delivered",
			"trip_id", trip.ID,
			"attempted", res.Attempted,
			"failed", res.Failed,
			"first_error", err,
		)
		return res
	}
	n.log.InfoContext(ctx, "invitations delivered", "trip_id", trip.ID, "attempted", res.Attempted)
	return res
}

// detach keeps ctx's values (request id) but not its cancellation.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
}

func (n *Notifier) send(ctx context.Context, msg notify.Message, attrs ...any) error {
	receipt, err := n.mailer.Send(ctx, msg)
	if err != nil {
		return n.fail(ctx, err, append(attrs, "to", msg.Recipients())...)
	}
	n.log.DebugContext(ctx, "email sent", append(attrs, "to", msg.Recipients(), "message_id", receipt.MessageID)...)
	return nil
}

func (n *Notifier) fail(ctx context.Context, err error, attrs ...any) error {
	n.log.ErrorContext(ctx, "email not delivered", append(attrs, "error", err)...)
	return fmt.Errorf("service.Notifier: %w", err)
}
