// Package password hashes and checks user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor the service has always used.
const DefaultCost = 10

// MaxLength is the number of password bytes bcrypt reads. Longer passwords
// are truncated to it, so two passwords sharing the first MaxLength bytes
// verify against each other.
const MaxLength = 72

// ErrMismatch is returned when a password does not match its hash.
var ErrMismatch = errors.New("password does not match")

// Hasher is a bcrypt hasher with a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. A cost outside bcrypt's range falls back to
// DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of raw.
func (h *Hasher) Hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Compare checks raw against hash, returning ErrMismatch on a wrong password.
func (h *Hasher) Compare(hash, raw string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(raw))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}

func truncate(raw string) []byte {
	b := []byte(raw)
	if len(b) > MaxLength {
		b = b[:MaxLength]
	}
	return b
}
