package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
	"taskboard/internal/password"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// PasswordHasher hashes new passwords and checks login attempts.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Accounts registers users and logs them in.
type Accounts struct {
	users  repository.UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
	newID  func() string

	// dummyHash is compared against on unknown emails so both login
	// failure paths do the same bcrypt work.
	dummyOnce sync.Once
	dummyHash string
}

// NewAccounts wires the account use cases.
func NewAccounts(users repository.UserStore, hasher PasswordHasher, tokens TokenIssuer) *Accounts {
	return &Accounts{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Register hashes rawPassword and stores a new user, returning its id.
func (a *Accounts) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	hash, err := a.hasher.Hash(rawPassword)
	if err != nil {
		return "", err
	}
	u := &models.User{
		ID:           a.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}
	if err := a.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	logger.Info(ctx, "User registered", "user_id", u.ID)
	return u.ID, nil
}

// Login checks the credentials and returns a signed token. An unknown email
// and a wrong password both yield ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, email, rawPassword string) (string, error) {
	u, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		a.burnCompare(rawPassword)
		logger.Debug(ctx, "Login rejected", "reason", "unknown email")
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := a.hasher.Compare(u.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			logger.Debug(ctx, "Login rejected", "reason", "password mismatch", "user_id", u.ID)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	tok, err := a.tokens.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

func (a *Accounts) burnCompare(rawPassword string) {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash("taskboard-unknown-user")
	})
	if a.dummyHash != "" {
		_ = a.hasher.Compare(a.dummyHash, rawPassword)
	}
}
