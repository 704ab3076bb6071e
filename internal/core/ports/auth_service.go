package ports

import (
	"context"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	// Register creates an unverified account and triggers verification-email
	// delivery. It does not log the caller in.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login authenticates by email and password and returns a signed bearer
	// token together with the account. Unknown emails, wrong passwords, and
	// blocked accounts all fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// VerifyEmail consumes a single-use verification token.
	VerifyEmail(ctx context.Context, token string) error
	// UpdateActivity refreshes the account's last activity time. A missing
	// account is a no-op.
	UpdateActivity(ctx context.Context, id string) error
}
