// Package notify delivers best-effort messages to people.
//
// Delivery is fire-and-forget: a failed or slow notification must never
// block or fail the request that triggered it. Callers dispatch through
// Broadcast, which fans out to recipients and only logs failures.
package notify

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Message is a single notification to one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers a single message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Noop discards every message. The default wiring: notification is an
// optional hook, not a required behavior.
type Noop struct{}

func (Noop) Send(context.Context, Message) error { return nil }

// Slog writes notifications to the structured log instead of delivering
// them. Useful in development environments without a mail relay.
type Slog struct {
	Logger *slog.Logger
}

func (s Slog) Send(ctx context.Context, msg Message) error {
	s.Logger.InfoContext(ctx, "notification",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

const (
	broadcastTimeout     = 5 * time.Second
	broadcastConcurrency = 4
)

// Broadcast fans one message body out to several recipients with bounded
// concurrency. Errors are contained: failures are logged per recipient
// and never returned to the caller. The context is detached from the
// request so an already-committed mutation cannot be outlived by its own
// cancellation.
func Broadcast(n Notifier, logger *slog.Logger, recipients []string, subject, body string) {
	if n == nil || len(recipients) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(broadcastConcurrency)
		for _, to := range recipients {
			g.Go(func() error {
				err := n.Send(gctx, Message{To: to, Subject: subject, Body: body})
				if err != nil && logger != nil {
					logger.WarnContext(gctx, "notification delivery failed",
						"to", to,
						"error", err,
					)
				}
				// Never propagate: one dead mailbox must not cancel the rest.
				return nil
			})
		}
		_ = g.Wait()
	}()
}
