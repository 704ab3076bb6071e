package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
	"github.com/usermgmt/user-management-api/internal/pkg/password"
	"github.com/usermgmt/user-management-api/internal/token"
)

const (
	maxNameLen  = 100
	maxEmailLen = 255
)

// AuthService implements registration, login, and email verification over the
// account status state machine.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Issuer
	mail   ports.MailDispatcher
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Issuer, mail ports.MailDispatcher, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, mail: mail, log: log}
}

// Register creates an unverified account with a fresh single-use verification
// token and hands the verification mail to the dispatcher. Delivery is
// detached: Register returns before (and regardless of whether) the email
// goes out.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || len(in.Name) > maxNameLen {
		return nil, domain.ErrInvalidInput
	}
	if in.Email == "" || len(in.Email) > maxEmailLen {
		return nil, domain.ErrInvalidInput
	}
	if in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	verificationToken := uuid.NewString()
	user := &domain.User{
		Name:                   in.Name,
		Email:                  in.Email,
		PasswordHash:           hash,
		Status:                 domain.StatusUnverified,
		EmailVerificationToken: &verificationToken,
		RegistrationTime:       time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.mail.Enqueue(ports.VerificationMail{Email: created.Email, Token: verificationToken})

	s.log.Info().
		Str("user_id", created.ID).
		Str("email", created.Email).
		Msg("user registered")

	return created, nil
}

// Login authenticates by email and password. Unknown emails, blocked
// accounts, and wrong passwords are indistinguishable to the caller so that
// account existence never leaks. Unverified accounts may log in.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *domain.User, error) {
	if email == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.Status == domain.StatusBlocked {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(pass, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginTime = &now
	user.LastActivityTime = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return "", nil, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}

// VerifyEmail consumes a single-use verification token. Consumption activates
// the account unless it is blocked; either way the token is cleared and a
// second call with the same token fails.
func (s *AuthService) VerifyEmail(ctx context.Context, verificationToken string) error {
	if verificationToken == "" {
		return domain.ErrInvalidToken
	}

	user, err := s.repo.ConsumeVerificationToken(ctx, verificationToken)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("status", string(user.Status)).
		Msg("verification token consumed")

	return nil
}

// UpdateActivity refreshes the account's last activity timestamp. A missing
// account is a silent no-op.
func (s *AuthService) UpdateActivity(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	now := time.Now().UTC()
	user.LastActivityTime = &now
	return s.repo.Update(ctx, user)
}
