package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// UserService implements the admin operations: listing and bulk
// block/unblock/delete.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// ListAll returns every account, most recently logged in first, accounts that
// never logged in last.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListAll(ctx)
}

// BlockMany blocks each given account. Missing ids are skipped.
func (s *UserService) BlockMany(ctx context.Context, ids []string) error {
	return s.setStatusMany(ctx, ids, domain.StatusBlocked)
}

// UnblockMany reactivates each given blocked account. Missing ids and
// accounts that are not blocked are skipped.
func (s *UserService) UnblockMany(ctx context.Context, ids []string) error {
	return s.setStatusMany(ctx, ids, domain.StatusActive)
}

func (s *UserService) setStatusMany(ctx context.Context, ids []string, next domain.Status) error {
	for _, id := range ids {
		user, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return err
		}
		if !user.Status.CanTransitionTo(next) {
			continue
		}

		user.Status = next
		if err := s.repo.Update(ctx, user); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return err
		}

		s.log.Info().
			Str("user_id", id).
			Str("status", string(next)).
			Msg("user status updated")
	}
	return nil
}

// DeleteMany hard-deletes each given account, freeing its email for a fresh
// registration. Missing ids are skipped.
func (s *UserService) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return err
		}
		s.log.Info().Str("user_id", id).Msg("user deleted")
	}
	return nil
}

// DeleteAllUnverified removes every account whose status is unverified and
// reports how many were removed. Active and blocked accounts are never
// touched, token field or not.
func (s *UserService) DeleteAllUnverified(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteWhereUnverified(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("count", n).Msg("unverified users deleted")
	return n, nil
}
