package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ashaconnect/payout-system/internal/core/domain"
	"github.com/ashaconnect/payout-system/internal/core/ports"
)

// PaymentService enforces the payment request state machine server-side, so
// the lifecycle does not depend on client-side button gating alone.
type PaymentService struct {
	repo     ports.PaymentRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewPaymentService(repo ports.PaymentRepository, notifier ports.Notifier, logger zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, notifier: notifier, logger: logger}
}

// Submit stores a new pending payment request for the worker. Derived values
// are re-checked against the activity count to guard against drift.
func (s *PaymentService) Submit(ctx context.Context, input ports.SubmitPaymentInput) (*domain.PaymentRequest, error) {
	if input.Payment <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.Credits != domain.DeriveCredits(input.Count) || input.Payment != domain.DerivePayment(input.Count) {
		return nil, domain.ErrAmountMismatch
	}

	_, err := s.repo.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, domain.ErrRequestExists
	}
	if !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.PaymentRequest{
		ID:        uuid.NewString(),
		Username:  input.Username,
		Count:     input.Count,
		Credits:   input.Credits,
		Payment:   input.Payment,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, req); err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to store payment request")
		return nil, err
	}

	s.logger.Info().Str("username", input.Username).Int("payment", input.Payment).Msg("payment request submitted")
	s.notify(input.Username, domain.StatusNone, domain.StatusPending, input.Payment, now)

	return req, nil
}

// Status reports the current lifecycle state for username. A missing record
// is reported as StatusNone, not as an error. Repeated calls with no
// intervening writes always return the same result.
func (s *PaymentService) Status(ctx context.Context, username string) (domain.PaymentStatus, error) {
	req, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return domain.StatusNone, nil
		}
		return domain.StatusNone, err
	}
	return req.Status, nil
}

// List returns the full collection of payment requests.
func (s *PaymentService) List(ctx context.Context) ([]*domain.PaymentRequest, error) {
	return s.repo.List(ctx)
}

// Approve flips a pending request to approved. Only pending requests can be
// approved.
func (s *PaymentService) Approve(ctx context.Context, username string) (*domain.PaymentRequest, error) {
	req, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransitionTo(domain.StatusApproved) {
		return nil, fmt.Errorf("approve: %w (from %s)", domain.ErrInvalidTransition, req.Status)
	}

	if err := s.repo.SetStatus(ctx, username, domain.StatusApproved); err != nil {
		return nil, err
	}

	req.Status = domain.StatusApproved
	req.UpdatedAt = time.Now().UTC()

	s.logger.Info().Str("username", username).Int("payment", req.Payment).Msg("payment request approved")
	s.notify(username, domain.StatusPending, domain.StatusApproved, req.Payment, req.UpdatedAt)

	return req, nil
}

// Reset removes an approved request. Pending requests cannot be reset, and a
// missing record is reported distinctly so callers can tell "nothing to
// reset" from a hard failure.
func (s *PaymentService) Reset(ctx context.Context, username string) error {
	req, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if !req.Status.CanTransitionTo(domain.StatusNone) {
		return fmt.Errorf("reset: %w (from %s)", domain.ErrInvalidTransition, req.Status)
	}

	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("payment request cleared")
	s.notify(username, domain.StatusApproved, domain.StatusNone, req.Payment, time.Now().UTC())

	return nil
}

func (s *PaymentService) notify(username string, from, to domain.PaymentStatus, payment int, at time.Time) {
	if s.notifier == nil {
		return
	}
	s.notifier.Enqueue(ports.PaymentEventInput{
		Username: username,
		From:     from,
		To:       to,
		Payment:  payment,
		At:       at,
	})
}
