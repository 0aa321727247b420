package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/password"
	"taskboard/internal/repository/memory"
	"taskboard/internal/token"
)

func newAccounts(t *testing.T) (*Accounts, *memory.Store, *token.Service) {
	t.Helper()
	store := memory.New()
	tokens, err := token.New([]byte("test-secret"), time.Hour, nil)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAccounts(store, password.NewHasher(bcrypt.MinCost), tokens), store, tokens
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	accounts, _, _ := newAccounts(t)

	if _, err := accounts.Register(ctx, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, tc := range []struct{ name, pw string }{
		{"Alice", "pw"},
		{"Bob", "different"},
		{"", ""},
	} {
		_, err := accounts.Register(ctx, tc.name, "a@x.com", tc.pw)
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("register(%q,%q): expected ErrDuplicateEmail, got %v", tc.name, tc.pw, err)
		}
	}
}

func TestRegisterStoresSaltedHash(t *testing.T) {
	ctx := context.Background()
	accounts, store, _ := newAccounts(t)

	if _, err := accounts.Register(ctx, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := accounts.Register(ctx, "Bob", "b@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	alice, err := store.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	bob, err := store.GetUserByEmail(ctx, "b@x.com")
	if err != nil {
		t.Fatalf("get bob: %v", err)
	}
	if alice.PasswordHash == "pw" || bob.PasswordHash == "pw" {
		t.Fatal("stored credential must not equal the raw password")
	}
	if alice.PasswordHash == bob.PasswordHash {
		t.Fatal("expected different hashes for the same password")
	}
	if alice.ID == "" || alice.ID == bob.ID {
		t.Fatalf("expected distinct ids, got %q and %q", alice.ID, bob.ID)
	}
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	ctx := context.Background()
	accounts, _, tokens := newAccounts(t)

	id, err := accounts.Register(ctx, "Alice", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, err := accounts.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	got, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != id {
		t.Fatalf("expected token for %q, got %q", id, got)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	accounts, _, _ := newAccounts(t)

	if _, err := accounts.Register(ctx, "Alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := accounts.Login(ctx, "nobody@x.com", "pw")
	_, wrongErr := accounts.Login(ctx, "a@x.com", "wrong")
	_, caseErr := accounts.Login(ctx, "A@x.com", "pw")

	for _, err := range []error{unknownErr, wrongErr, caseErr} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestRegisterAndLoginWithLongPassword(t *testing.T) {
	ctx := context.Background()
	accounts, _, _ := newAccounts(t)
	long := strings.Repeat("p", 80)

	if _, err := accounts.Register(ctx, "Alice", "a@x.com", long); err != nil {
		t.Fatalf("register with 80-byte password: %v", err)
	}
	if _, err := accounts.Login(ctx, "a@x.com", long); err != nil {
		t.Fatalf("login with 80-byte password: %v", err)
	}
	if _, err := accounts.Login(ctx, "a@x.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
