package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

func seedUser(repo *stubUserRepo, name, email string, status domain.Status) *domain.User {
	u, err := repo.Create(context.Background(), &domain.User{
		Name:             name,
		Email:            email,
		PasswordHash:     "$2a$10$fakefakefakefakefakefa",
		Status:           status,
		RegistrationTime: time.Now().UTC(),
	})
	if err != nil {
		panic(err)
	}
	return u
}

func TestUserService_BlockMany(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	active := seedUser(repo, "A", "a@x.com", domain.StatusActive)
	unverified := seedUser(repo, "B", "b@x.com", domain.StatusUnverified)

	if err := svc.BlockMany(context.Background(), []string{active.ID, unverified.ID, "missing"}); err != nil {
		t.Fatalf("BlockMany returned error: %v", err)
	}

	if repo.users[active.ID].Status != domain.StatusBlocked {
		t.Fatalf("active account not blocked")
	}
	if repo.users[unverified.ID].Status != domain.StatusBlocked {
		t.Fatalf("unverified account not blocked")
	}
}

func TestUserService_UnblockMany_OnlyBlocked(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	blocked := seedUser(repo, "A", "a@x.com", domain.StatusBlocked)
	unverified := seedUser(repo, "B", "b@x.com", domain.StatusUnverified)

	if err := svc.UnblockMany(context.Background(), []string{blocked.ID, unverified.ID, "missing"}); err != nil {
		t.Fatalf("UnblockMany returned error: %v", err)
	}

	if repo.users[blocked.ID].Status != domain.StatusActive {
		t.Fatalf("blocked account not reactivated")
	}
	if repo.users[unverified.ID].Status != domain.StatusUnverified {
		t.Fatalf("unblock must never activate an unverified account")
	}
}

func TestUserService_DeleteMany_FreesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	u := seedUser(repo, "A", "a@x.com", domain.StatusActive)

	if err := svc.DeleteMany(context.Background(), []string{u.ID, "missing"}); err != nil {
		t.Fatalf("DeleteMany returned error: %v", err)
	}
	if _, ok := repo.users[u.ID]; ok {
		t.Fatalf("account not deleted")
	}

	// The email is free for a fresh registration afterward.
	if _, err := repo.Create(context.Background(), &domain.User{Name: "A2", Email: "a@x.com", Status: domain.StatusUnverified}); err != nil {
		t.Fatalf("re-registration with freed email failed: %v", err)
	}
}

func TestUserService_DeleteAllUnverified(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	u1 := seedUser(repo, "A", "a@x.com", domain.StatusUnverified)
	u2 := seedUser(repo, "B", "b@x.com", domain.StatusUnverified)
	active := seedUser(repo, "C", "c@x.com", domain.StatusActive)
	blocked := seedUser(repo, "D", "d@x.com", domain.StatusBlocked)

	// An active account with a stray token must be untouched: the predicate
	// is on status, not on token presence.
	strayToken := "stray-token"
	repo.users[active.ID].EmailVerificationToken = &strayToken

	n, err := svc.DeleteAllUnverified(context.Background())
	if err != nil {
		t.Fatalf("DeleteAllUnverified returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deletions, got %d", n)
	}

	for _, id := range []string{u1.ID, u2.ID} {
		if _, ok := repo.users[id]; ok {
			t.Fatalf("unverified account %s survived", id)
		}
	}
	if _, ok := repo.users[active.ID]; !ok {
		t.Fatalf("active account was deleted")
	}
	if _, ok := repo.users[blocked.ID]; !ok {
		t.Fatalf("blocked account was deleted")
	}
}

func TestUserService_ListAll_LastLoginDescNullsLast(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()

	never := seedUser(repo, "Never", "n@x.com", domain.StatusActive)
	first := seedUser(repo, "First", "f@x.com", domain.StatusActive)
	second := seedUser(repo, "Second", "s@x.com", domain.StatusActive)
	repo.users[first.ID].LastLoginTime = &newer
	repo.users[second.ID].LastLoginTime = &older

	users, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	if users[0].ID != first.ID || users[1].ID != second.ID || users[2].ID != never.ID {
		t.Fatalf("unexpected order: %s, %s, %s", users[0].Name, users[1].Name, users[2].Name)
	}
}
