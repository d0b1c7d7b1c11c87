package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vitrinashop/vitrina/internal/domain"
)

// submitLatency simulates a short network round-trip before the receipt.
const submitLatency = 400 * time.Millisecond

// Service validates and "submits" contact messages. There is no real
// delivery; accepted messages are persisted locally and acknowledged
// with a receipt.
type Service struct {
	store  domain.CatalogStore // may be nil; submissions are then not persisted
	logger *slog.Logger

	latency time.Duration
}

// NewService creates a contact service
func NewService(st domain.CatalogStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   st,
		logger:  logger,
		latency: submitLatency,
	}
}

// Submit validates msg and records it. Validation failures return
// domain.ErrInvalidContact wrapped with the first problem.
func (s *Service) Submit(ctx context.Context, msg domain.ContactMessage) (domain.ContactReceipt, error) {
	if problems := msg.Validate(); len(problems) > 0 {
		return domain.ContactReceipt{}, fmt.Errorf("%w: %s", domain.ErrInvalidContact, problems[0])
	}

	// Simulated submission latency, cancellable.
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		return domain.ContactReceipt{}, ctx.Err()
	}

	id := uuid.NewString()
	if s.store != nil {
		payload, err := json.Marshal(msg)
		if err == nil {
			if err := s.store.SaveContact(id, payload); err != nil {
				s.logger.Warn("failed to persist contact message", "error", err)
			}
		}
	}

	s.logger.Info("contact message submitted", "id", id, "email", msg.Email)
	return domain.ContactReceipt{ID: id}, nil
}
