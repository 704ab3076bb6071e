package ports

import (
	"context"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Deletes are hard deletes: a removed account frees its email for re-registration.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListAll returns every account ordered by last login time descending,
	// accounts that never logged in last.
	ListAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// DeleteWhereUnverified removes every account whose status is unverified
	// and reports how many were removed. The predicate is on status, never on
	// verification-token presence.
	DeleteWhereUnverified(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ConsumeVerificationToken atomically clears the matching verification
	// token and, unless the account is blocked, activates it. Returns the
	// updated account, or domain.ErrInvalidToken when no account holds the
	// token. A consumed token never matches again.
	ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error)
}
