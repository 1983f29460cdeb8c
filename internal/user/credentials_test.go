package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/checkmate-app/checkmate/internal/shared"
)

func createVerifiedUser(t *testing.T, store *Store, email, password string) *User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	now := time.Now()
	u := &User{
		Email:           email,
		Username:        "u_" + shared.NewID(""),
		PasswordHash:    hash,
		PasswordChanges: 1,
		PrimaryProvider: shared.ProviderCredentials,
		EmailVerified:   &now,
	}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func TestVerifier_Verify(t *testing.T) {
	store := newTestStore(t)
	verifier := NewVerifier(store)
	ctx := context.Background()

	u := createVerifiedUser(t, store, "login@example.com", "correct-horse")

	got, err := verifier.Verify(ctx, "login@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got user %s, want %s", got.ID, u.ID)
	}
}

func TestVerifier_Verify_Failures(t *testing.T) {
	store := newTestStore(t)
	verifier := NewVerifier(store)
	ctx := context.Background()

	createVerifiedUser(t, store, "known@example.com", "right-password")

	// OAuth-only account, no hash at all.
	oauthOnly := &User{
		Email:           "oauth-only@example.com",
		Username:        "oauth_only",
		PrimaryProvider: shared.ProviderGitHub,
	}
	store.Create(ctx, oauthOnly)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "nobody@example.com", "whatever", shared.ErrInvalidCredentials},
		{"wrong password", "known@example.com", "wrong-password", shared.ErrInvalidCredentials},
		{"oauth-only account", "oauth-only@example.com", "anything", shared.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifier_Verify_UnverifiedEmail(t *testing.T) {
	store := newTestStore(t)
	verifier := NewVerifier(store)
	ctx := context.Background()

	hash, _ := HashPassword("secret-pass")
	u := &User{
		Email:           "pending@example.com",
		Username:        "pending_user",
		PasswordHash:    hash,
		PasswordChanges: 1,
		PrimaryProvider: shared.ProviderCredentials,
	}
	store.Create(ctx, u)

	// Correct password but unverified email is a distinct failure, reported
	// only after the password check passes.
	if _, err := verifier.Verify(ctx, "pending@example.com", "secret-pass"); !errors.Is(err, shared.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}

	// Wrong password on an unverified account stays generic.
	if _, err := verifier.Verify(ctx, "pending@example.com", "wrong"); !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("CheckPassword should accept the original password")
	}
	if CheckPassword(hash, "other") {
		t.Error("CheckPassword should reject a different password")
	}
}
