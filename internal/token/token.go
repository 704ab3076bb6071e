// Package token mints and validates the signed bearer tokens issued on login.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultSecret   = "default-secret-key-at-least-32-chars-long"
	defaultIssuer   = "UserManagementApp"
	defaultAudience = "UserManagementAppUsers"
	defaultTTL      = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid bearer token")

// Config carries the signing parameters. Zero values fall back to fixed
// defaults so a bare deployment still boots.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Claims is the token payload: the registered claim set plus the account's
// email and display name.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Issuer mints and parses HS256-signed tokens with a symmetric key held only
// by this process.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	if cfg.Secret == "" {
		cfg.Secret = defaultSecret
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = defaultAudience
	}
	if cfg.TTL == 0 {
		cfg.TTL = defaultTTL
	}
	return &Issuer{cfg: cfg}
}

// Issue signs a token whose subject is the account id.
func (i *Issuer) Issue(userID, email, name string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
		Email: email,
		Name:  name,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.cfg.Secret))
}

// Parse validates signature, expiry, issuer, and audience, and returns the
// claims. Any failure collapses into ErrInvalidToken.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(i.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
