package ports

import (
	"context"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole sets the role of the user identified by email.
	UpdateRole(ctx context.Context, email, role string) error
}
