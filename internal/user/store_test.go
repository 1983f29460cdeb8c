package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/checkmate-app/checkmate/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestUserDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *Store {
	store := NewStore(setupTestUserDB(t))
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store
}

func TestStore_Create(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{
		Email:           "Alice@Example.com",
		Username:        "Alice_99",
		Name:            "Alice",
		PrimaryProvider: shared.ProviderCredentials,
	}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == "" {
		t.Error("user ID should be generated if not provided")
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email should be lowercased, got %q", u.Email)
	}
	if u.Username != "alice_99" {
		t.Errorf("username should be lowercased, got %q", u.Username)
	}
}

func TestStore_Create_Conflicts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &User{Email: "taken@example.com", Username: "taken", PrimaryProvider: shared.ProviderCredentials}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name      string
		user      *User
		wantField string
	}{
		{
			name:      "duplicate email",
			user:      &User{Email: "TAKEN@example.com", Username: "someone_else", PrimaryProvider: shared.ProviderCredentials},
			wantField: "email",
		},
		{
			name:      "duplicate username",
			user:      &User{Email: "free@example.com", Username: "Taken", PrimaryProvider: shared.ProviderCredentials},
			wantField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Create(ctx, tt.user)
			var conflict *shared.ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("expected ConflictError, got %v", err)
			}
			if conflict.Field != tt.wantField {
				t.Errorf("conflict field = %q, want %q", conflict.Field, tt.wantField)
			}
			if !errors.Is(err, shared.ErrConflict) {
				t.Error("ConflictError should unwrap to ErrConflict")
			}
		})
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{Email: "case@example.com", Username: "case_user", PrimaryProvider: shared.ProviderCredentials}
	store.Create(ctx, u)

	got, err := store.GetByEmail(ctx, "CASE@Example.COM")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got user %s, want %s", got.ID, u.ID)
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetPassword_IncrementsCounter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{Email: "pw@example.com", Username: "pw_user", PrimaryProvider: shared.ProviderGitHub}
	store.Create(ctx, u)

	if err := store.SetPassword(ctx, u.ID, "hash-one"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if err := store.SetPassword(ctx, u.ID, "hash-two"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	got, _ := store.GetByID(ctx, u.ID)
	if got.PasswordChanges != 2 {
		t.Errorf("PasswordChanges = %d, want 2", got.PasswordChanges)
	}
	if got.PasswordHash != "hash-two" {
		t.Errorf("PasswordHash = %q, want latest", got.PasswordHash)
	}
	if !got.HasPassword() {
		t.Error("HasPassword should be true after setting a password")
	}

	if err := store.SetPassword(ctx, "user_missing", "x"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestStore_UpsertPlatform(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{Email: "link@example.com", Username: "link_user", PrimaryProvider: shared.ProviderCredentials}
	store.Create(ctx, u)

	first := ConnectedPlatform{Provider: shared.ProviderGitHub, Username: "octocat", ConnectedAt: time.Now()}
	got, err := store.UpsertPlatform(ctx, u.ID, first)
	if err != nil {
		t.Fatalf("UpsertPlatform() error = %v", err)
	}
	if len(got.Platforms) != 1 {
		t.Fatalf("expected 1 platform, got %d", len(got.Platforms))
	}

	// Linking the same provider again replaces rather than duplicates.
	second := ConnectedPlatform{Provider: shared.ProviderGitHub, Username: "octocat-renamed", ConnectedAt: time.Now()}
	got, err = store.UpsertPlatform(ctx, u.ID, second)
	if err != nil {
		t.Fatalf("UpsertPlatform() error = %v", err)
	}
	if len(got.Platforms) != 1 {
		t.Fatalf("expected 1 platform after re-link, got %d", len(got.Platforms))
	}
	if got.Platforms[0].Username != "octocat-renamed" {
		t.Errorf("platform username = %q, want replacement", got.Platforms[0].Username)
	}

	reloaded, _ := store.GetByID(ctx, u.ID)
	if reloaded.Version == 0 {
		t.Error("version should advance on platform writes")
	}
}

func TestStore_RemovePlatform(t *testing.T) {
	ctx := context.Background()

	t.Run("primary provider locked without password", func(t *testing.T) {
		store := newTestStore(t)
		u := &User{Email: "oauth@example.com", Username: "oauth_user", PrimaryProvider: shared.ProviderGitHub}
		store.Create(ctx, u)
		store.UpsertPlatform(ctx, u.ID, ConnectedPlatform{Provider: shared.ProviderGitHub, Username: "octocat"})

		_, err := store.RemovePlatform(ctx, u.ID, shared.ProviderGitHub)
		if !errors.Is(err, shared.ErrPrimaryProviderLocked) {
			t.Fatalf("expected ErrPrimaryProviderLocked, got %v", err)
		}
	})

	t.Run("primary provider removable once password set", func(t *testing.T) {
		store := newTestStore(t)
		u := &User{Email: "oauth2@example.com", Username: "oauth_user2", PrimaryProvider: shared.ProviderGitHub}
		store.Create(ctx, u)
		store.UpsertPlatform(ctx, u.ID, ConnectedPlatform{Provider: shared.ProviderGitHub, Username: "octocat"})
		store.SetPassword(ctx, u.ID, "hash")

		got, err := store.RemovePlatform(ctx, u.ID, shared.ProviderGitHub)
		if err != nil {
			t.Fatalf("RemovePlatform() error = %v", err)
		}
		if len(got.Platforms) != 0 {
			t.Errorf("expected no platforms, got %d", len(got.Platforms))
		}
	})

	t.Run("unlinked provider", func(t *testing.T) {
		store := newTestStore(t)
		u := &User{Email: "plain@example.com", Username: "plain_user", PrimaryProvider: shared.ProviderCredentials}
		store.Create(ctx, u)

		_, err := store.RemovePlatform(ctx, u.ID, shared.ProviderGitHub)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStore_VerificationFlow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{Email: "verify@example.com", Username: "verify_user", PrimaryProvider: shared.ProviderCredentials}
	store.Create(ctx, u)

	token := shared.NewToken()
	if err := store.SetVerificationToken(ctx, u.ID, token, time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("SetVerificationToken() error = %v", err)
	}

	verified, err := store.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if verified.EmailVerified == nil {
		t.Error("EmailVerified should be stamped")
	}

	// Token is single-use.
	if _, err := store.Verify(ctx, token); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound on reuse, got %v", err)
	}
}

func TestStore_Verify_ExpiredToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{Email: "expired@example.com", Username: "expired_user", PrimaryProvider: shared.ProviderCredentials}
	store.Create(ctx, u)

	token := shared.NewToken()
	store.SetVerificationToken(ctx, u.ID, token, time.Now().Add(-time.Hour))

	if _, err := store.Verify(ctx, token); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired token, got %v", err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &User{Email: "a@example.com", Username: "user_a", PrimaryProvider: shared.ProviderCredentials}
	b := &User{Email: "b@example.com", Username: "user_b", PrimaryProvider: shared.ProviderCredentials}
	store.Create(ctx, a)
	store.Create(ctx, b)

	// Keeping your own email is not a conflict.
	got, err := store.UpdateProfile(ctx, a.ID, "New Name", "a@example.com", "user_a")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name = %q, want %q", got.Name, "New Name")
	}

	// Taking another user's email is.
	_, err = store.UpdateProfile(ctx, a.ID, "New Name", "b@example.com", "user_a")
	var conflict *shared.ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}

	_, err = store.UpdateProfile(ctx, a.ID, "New Name", "a@example.com", "user_b")
	if !errors.As(err, &conflict) || conflict.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestStore_Create_RacedDuplicateIsConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{Email: "raced@example.com", Username: "raced_user", PrimaryProvider: shared.ProviderCredentials}
	if err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A colliding insert that slips past the pre-checks must still surface
	// as a conflict, not a raw driver error.
	dup := &User{ID: u.ID, Email: "other@example.com", Username: "other_user", PrimaryProvider: shared.ProviderCredentials}
	err := store.Create(ctx, dup)
	if !errors.Is(err, shared.ErrConflict) {
		t.Fatalf("expected conflict for raced duplicate insert, got %v", err)
	}
}

func TestStore_UpsertPlatform_SurvivesConcurrentBump(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := createVerifiedUser(t, store, "race@example.com", "password")

	// Bump the version out from under the first write attempt, the way a
	// concurrent link on another request would.
	calls := 0
	err := store.withVersion(ctx, u.ID, func(current *User) error {
		calls++
		if calls == 1 {
			if _, err := store.UpsertPlatform(ctx, u.ID, ConnectedPlatform{
				Provider: shared.ProviderGitHub, Username: "octocat", ConnectedAt: time.Now(),
			}); err != nil {
				t.Fatalf("concurrent UpsertPlatform() error = %v", err)
			}
		}
		if current.Platforms.Find(shared.ProviderCredentials) == nil {
			current.Platforms = append(current.Platforms, ConnectedPlatform{
				Provider: shared.ProviderCredentials, Username: u.Username, ConnectedAt: time.Now(),
			})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withVersion() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("expected one retry after the version bump, mutate ran %d times", calls)
	}

	reloaded, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if reloaded.Platforms.Find(shared.ProviderGitHub) == nil {
		t.Error("concurrently linked platform should survive")
	}
	if reloaded.Platforms.Find(shared.ProviderCredentials) == nil {
		t.Error("retried link should survive")
	}
	if reloaded.Version != 2 {
		t.Errorf("version = %d, want 2", reloaded.Version)
	}
}

func TestStore_WithVersion_RetriesExhausted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := createVerifiedUser(t, store, "contended@example.com", "password")

	calls := 0
	err := store.withVersion(ctx, u.ID, func(current *User) error {
		calls++
		// Every attempt loses the race.
		return store.db.Model(&User{}).Where("id = ?", u.ID).
			Update("version", gorm.Expr("version + 1")).Error
	})
	if err == nil {
		t.Fatal("expected error once retries are exhausted")
	}
	if calls != maxVersionRetries {
		t.Errorf("mutate ran %d times, want %d", calls, maxVersionRetries)
	}
}
