package ports

import (
	"context"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token alongside
	// the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
