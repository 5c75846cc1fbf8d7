package ports

import (
	"context"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

// AuthService verifies backer credentials and issues session tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed token plus the
	// authenticated user. Returns domain.ErrInvalidCredentials on any
	// username/password mismatch.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// VerifyCredentials checks the username/password pair against the user
	// collection without issuing a token.
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)
}
