package user

import (
	"context"
	"errors"

	"github.com/checkmate-app/checkmate/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Verifier validates email+password pairs against stored hashes. All lookup
// and comparison failures collapse into ErrInvalidCredentials so callers
// cannot distinguish an unknown email from a wrong password.
type Verifier struct {
	store *Store
}

func NewVerifier(store *Store) *Verifier {
	return &Verifier{store: store}
}

func (v *Verifier) Verify(ctx context.Context, email, password string) (*User, error) {
	u, err := v.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if u.PasswordHash == "" {
		// OAuth-only account: no password has ever been set.
		return nil, shared.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	if u.EmailVerified == nil {
		return nil, shared.ErrEmailNotVerified
	}

	_ = v.store.TouchLastLogin(ctx, u.ID)

	return u, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
