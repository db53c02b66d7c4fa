package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/store"
)

// Outbox records submissions and their delivery outcome.
type Outbox interface {
	SaveMessage(ctx context.Context, m store.Message) error
	MarkDelivered(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error
}

// Service accepts submissions from the relay-mode contact form.
type Service struct {
	relay  Relay
	notify Relay
	outbox Outbox
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a Service. notify and outbox may be nil.
func NewService(relay Relay, notify Relay, outbox Outbox, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		relay:  relay,
		notify: notify,
		outbox: outbox,
		logger: logger,
		now:    time.Now,
	}
}

// Submit sanitizes, validates, records and delivers a submission. It
// returns the message ID. Validation runs on the sanitized text, so a field
// holding nothing but markup counts as empty. Validation failures return
// *ValidationError and nothing is recorded; delivery failures are recorded,
// logged and returned, never retried.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	clean := sub.Normalize().Sanitize()
	if err := clean.Validate(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	log := s.logger.With(zap.String("message_id", id))

	if s.outbox != nil {
		err := s.outbox.SaveMessage(ctx, store.Message{
			ID:        id,
			Name:      clean.Name,
			Email:     clean.Email,
			Subject:   clean.Subject,
			Body:      clean.Message,
			Status:    store.StatusPending,
			CreatedAt: s.now(),
		})
		if err != nil {
			return "", fmt.Errorf("record submission: %w", err)
		}
	}

	if err := s.relay.Deliver(ctx, clean); err != nil {
		log.Warn("contact relay failed", zap.Error(err))
		if s.outbox != nil {
			if merr := s.outbox.MarkFailed(ctx, id, err.Error()); merr != nil {
				log.Error("mark message failed", zap.Error(merr))
			}
		}
		return id, fmt.Errorf("deliver submission: %w", err)
	}
	if s.outbox != nil {
		if err := s.outbox.MarkDelivered(ctx, id, s.now()); err != nil {
			log.Error("mark message delivered", zap.Error(err))
		}
	}

	if s.notify != nil {
		if err := s.notify.Deliver(ctx, clean); err != nil {
			log.Warn("contact notification failed", zap.Error(err))
		}
	}
	log.Info("contact message delivered")
	return id, nil
}
