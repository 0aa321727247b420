// Package token issues and verifies the signed identity tokens handed to
// clients on login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = time.Hour

var (
	ErrMalformed        = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token is expired")
)

// claims is the JWT payload: {userId, sub, iat, exp}.
type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Service signs tokens with a server-held HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New returns a Service. ttl <= 0 means DefaultTTL and a nil now means
// time.Now.
func New(secret []byte, ttl time.Duration, now func() time.Time) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Service{secret: secret, ttl: ttl, now: now}, nil
}

// Issue returns a signed token for userID expiring ttl from now.
func (s *Service) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	issuedAt := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the user id it
// was issued for. Errors are ErrMalformed, ErrInvalidSignature or ErrExpired.
func (s *Service) Verify(raw string) (string, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", mapJWTError(err)
	}
	if parsed.UserID == "" {
		return "", ErrMalformed
	}
	return parsed.UserID, nil
}

// mapJWTError translates jwt library errors to the package errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
