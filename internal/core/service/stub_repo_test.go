package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository mirroring the store's
// contract: unique emails, hard deletes, atomic token consumption.
type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
	err   error // when set, every call fails with it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.EmailVerificationToken != nil {
		tok := *u.EmailVerificationToken
		clone.EmailVerificationToken = &tok
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastLoginTime, out[j].LastLoginTime
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) DeleteWhereUnverified(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for id, u := range r.users {
		if u.Status == domain.StatusUnverified {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ConsumeVerificationToken(_ context.Context, token string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			u.EmailVerificationToken = nil
			if u.Status != domain.StatusBlocked {
				u.Status = domain.StatusActive
			}
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrInvalidToken
}

// stubDispatcher records enqueued verification mails.
type stubDispatcher struct {
	mails []ports.VerificationMail
}

func (d *stubDispatcher) Enqueue(m ports.VerificationMail) {
	d.mails = append(d.mails, m)
}
