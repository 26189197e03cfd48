package ports

import (
	"context"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

// PaymentRepository defines persistence operations for payment requests.
// There is at most one record per username; concurrency control on
// find-then-write is delegated to the backing store's unique index.
type PaymentRepository interface {
	// List returns every stored payment request.
	List(ctx context.Context) ([]*domain.PaymentRequest, error)
	// FindByUsername returns domain.ErrRequestNotFound when no record exists.
	FindByUsername(ctx context.Context, username string) (*domain.PaymentRequest, error)
	Insert(ctx context.Context, req *domain.PaymentRequest) error
	// SetStatus updates the status of the request owned by username.
	SetStatus(ctx context.Context, username string, status domain.PaymentStatus) error
	// DeleteByUsername removes the request owned by username.
	DeleteByUsername(ctx context.Context, username string) error
}
