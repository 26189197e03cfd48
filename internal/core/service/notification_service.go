package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ashaconnect/payout-system/internal/core/ports"
)

type notificationService struct {
	log zerolog.Logger
}

// NewNotificationService returns a NotificationService that records lifecycle
// transitions to the structured log. Delivery to an external channel
// (SMS, push) hangs off this same hook.
func NewNotificationService(log zerolog.Logger) ports.NotificationService {
	return &notificationService{log: log}
}

func (s *notificationService) Process(_ context.Context, event ports.PaymentEventInput) error {
	s.log.Info().
		Str("username", event.Username).
		Str("from", string(event.From)).
		Str("to", string(event.To)).
		Int("payment", event.Payment).
		Time("at", event.At).
		Msg("payment lifecycle notification")

	return nil
}
