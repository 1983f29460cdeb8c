package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/checkmate-app/checkmate/internal/shared"
	"gorm.io/gorm"
)

// maxVersionRetries bounds the optimistic-locking loop on platform updates.
const maxVersionRetries = 3

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&User{})
}

// Create inserts a new user. Email and username are case-normalized before
// the uniqueness checks so "A@x.com" and "a@x.com" collide.
func (s *Store) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = shared.NewID("user_")
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.LastLogin = time.Now()

	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return &shared.ConflictError{Field: "email"}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if _, err := s.GetByUsername(ctx, u.Username); err == nil {
		return &shared.ConflictError{Field: "username"}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent insert; the pre-check already told
		// us both fields were free, so attribute to email as the likelier.
		return &shared.ConflictError{Field: "email"}
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &u, err
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &u, err
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &u, err
}

// GetByVerificationToken resolves an unexpired verification token.
func (s *Store) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).
		Where("verification_token = ? AND verification_token_expires > ?", token, time.Now()).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &u, err
}

// UpdateProfile changes name/email/username, reporting per-field conflicts
// against other users.
func (s *Store) UpdateProfile(ctx context.Context, id, name, email, username string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if other, err := s.GetByEmail(ctx, email); err == nil && other.ID != id {
		return nil, &shared.ConflictError{Field: "email"}
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if other, err := s.GetByUsername(ctx, username); err == nil && other.ID != id {
		return nil, &shared.ConflictError{Field: "username"}
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"name":     name,
		"email":    email,
		"username": username,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// SetPassword stores a new hash and increments the change counter, which is
// what flips an OAuth-only account into one with a credential sign-in path.
func (s *Store) SetPassword(ctx context.Context, id, passwordHash string) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash":    passwordHash,
		"password_changes": gorm.Expr("password_changes + 1"),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) SetAvatar(ctx context.Context, id string, avatar *Avatar) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("avatar", avatar)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"verification_token":         token,
		"verification_token_expires": expires,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Verify consumes a verification token: stamps EmailVerified and clears the
// token fields so the link is single-use.
func (s *Store) Verify(ctx context.Context, token string) (*User, error) {
	u, err := s.GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Model(&User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"email_verified":             now,
		"verification_token":         nil,
		"verification_token_expires": nil,
	}).Error
	if err != nil {
		return nil, err
	}

	u.EmailVerified = &now
	u.VerificationToken = nil
	u.VerificationTokenExpires = nil
	return u, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// UpsertPlatform replaces or appends the platform entry for its provider.
// The version guard keeps two near-simultaneous links from overwriting each
// other: the loser of the race reloads and reapplies.
func (s *Store) UpsertPlatform(ctx context.Context, id string, platform ConnectedPlatform) (*User, error) {
	var out *User
	err := s.withVersion(ctx, id, func(u *User) error {
		replaced := false
		for i := range u.Platforms {
			if u.Platforms[i].Provider == platform.Provider {
				u.Platforms[i] = platform
				replaced = true
				break
			}
		}
		if !replaced {
			u.Platforms = append(u.Platforms, platform)
		}
		out = u
		return nil
	})
	return out, err
}

// RemovePlatform drops a platform link. Disconnecting the primary provider
// is refused while no password is set, which would otherwise lock the
// account out entirely.
func (s *Store) RemovePlatform(ctx context.Context, id string, provider shared.Provider) (*User, error) {
	var out *User
	err := s.withVersion(ctx, id, func(u *User) error {
		if u.Platforms.Find(provider) == nil {
			return shared.ErrNotFound
		}
		if u.PrimaryProvider == provider && u.PasswordChanges == 0 {
			return shared.ErrPrimaryProviderLocked
		}

		kept := make(PlatformList, 0, len(u.Platforms))
		for _, p := range u.Platforms {
			if p.Provider != provider {
				kept = append(kept, p)
			}
		}
		u.Platforms = kept
		out = u
		return nil
	})
	return out, err
}

// SetPasswordChanges overwrites the counter directly. Used by the linker to
// backfill legacy records where the counter was never written.
func (s *Store) SetPasswordChanges(ctx context.Context, id string, changes int) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Update("password_changes", changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) withVersion(ctx context.Context, id string, mutate func(*User) error) error {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		u, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := mutate(u); err != nil {
			return err
		}

		current := u.Version
		u.Version++
		result := s.db.WithContext(ctx).Model(&User{}).
			Where("id = ? AND version = ?", id, current).
			Updates(map[string]any{
				"platforms": u.Platforms,
				"version":   u.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		// Version moved under us; reload and retry.
	}
	return errors.New("user update contention: retries exhausted")
}
