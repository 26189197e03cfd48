package ports

import (
	"context"
	"time"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

// SubmitPaymentInput carries a worker's payment request. Credits and Payment
// are client-derived and re-checked against Count by the service.
type SubmitPaymentInput struct {
	Username string
	Count    int
	Credits  int
	Payment  int
}

// PaymentService drives the request → approve → reset lifecycle.
type PaymentService interface {
	// Submit stores a new pending request. Fails when an active request
	// already exists for the username.
	Submit(ctx context.Context, input SubmitPaymentInput) (*domain.PaymentRequest, error)
	// Status reports the current lifecycle state for username. Safe to call
	// when no record exists: it returns domain.StatusNone, never an error.
	Status(ctx context.Context, username string) (domain.PaymentStatus, error)
	// List returns the full collection of payment requests.
	List(ctx context.Context) ([]*domain.PaymentRequest, error)
	// Approve flips a pending request to approved (admin action).
	Approve(ctx context.Context, username string) (*domain.PaymentRequest, error)
	// Reset removes an approved request, returning the worker to a clean slate.
	Reset(ctx context.Context, username string) error
}

// PaymentEventInput describes a single lifecycle transition for asynchronous
// notification processing.
type PaymentEventInput struct {
	Username string
	From     domain.PaymentStatus
	To       domain.PaymentStatus
	Payment  int
	At       time.Time
}

// NotificationService processes payment lifecycle events off the request path.
type NotificationService interface {
	Process(ctx context.Context, event PaymentEventInput) error
}

// Notifier enqueues lifecycle events for asynchronous delivery.
type Notifier interface {
	Enqueue(event PaymentEventInput)
}
