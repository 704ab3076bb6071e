package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a user account.
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusActive     Status = "active"
	StatusBlocked    Status = "blocked"
)

// adminTransitions defines the status changes an admin action may apply.
// Verification (unverified → active) is not an admin transition; it happens
// only through consuming a verification token.
var adminTransitions = map[Status][]Status{
	StatusUnverified: {StatusBlocked},
	StatusActive:     {StatusBlocked},
	StatusBlocked:    {StatusActive},
}

var ErrInvalidInput = errors.New("invalid input")
var ErrEmailExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidToken = errors.New("invalid verification token")
var ErrUserNotFound = errors.New("user not found")

// CanTransitionTo reports whether an admin may move an account from status s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range adminTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// User models an account in the system. The password hash and the pending
// verification token never leave the process in API responses.
type User struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	PasswordHash           string     `json:"-"`
	Status                 Status     `json:"status"`
	EmailVerificationToken *string    `json:"-"`
	RegistrationTime       time.Time  `json:"registrationTime"`
	LastLoginTime          *time.Time `json:"lastLoginTime"`
	LastActivityTime       *time.Time `json:"lastActivityTime"`
}
