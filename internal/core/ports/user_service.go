package ports

import (
	"context"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

// UserService exposes the admin operations on accounts. Batch operations
// treat missing ids as silent skips, never as batch failures.
type UserService interface {
	ListAll(ctx context.Context) ([]domain.User, error)
	BlockMany(ctx context.Context, ids []string) error
	UnblockMany(ctx context.Context, ids []string) error
	DeleteMany(ctx context.Context, ids []string) error
	DeleteAllUnverified(ctx context.Context) (int64, error)
}
