package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/checkmate-app/checkmate/internal/shared"
)

// Linker reconciles a provider-asserted identity against the user store. It
// decides between two distinct operations: signing in (possibly creating an
// account) and connecting an additional provider to an already-authenticated
// account. The caller supplies that intent explicitly; it is never inferred
// from request headers.
type Linker struct {
	store   *Store
	avatars AvatarFetcher
	logger  *slog.Logger
}

func NewLinker(store *Store, avatars AvatarFetcher, logger *slog.Logger) *Linker {
	return &Linker{
		store:   store,
		avatars: avatars,
		logger:  logger,
	}
}

// Connect upserts the provider link on the session's existing user. The
// active session identity stays authoritative; this never switches accounts.
func (l *Linker) Connect(ctx context.Context, userID string, ident *ProviderIdentity) error {
	u, err := l.store.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := l.store.UpsertPlatform(ctx, u.ID, platformFromIdentity(ident)); err != nil {
		return err
	}

	if u.Avatar == nil {
		l.backfillAvatar(ctx, u.ID, ident)
	}

	return nil
}

// SignIn resolves the asserted identity to a user, creating the account on
// first contact. OAuth sign-ins imply a verified email.
func (l *Linker) SignIn(ctx context.Context, ident *ProviderIdentity) (*User, error) {
	u, err := l.store.GetByEmail(ctx, ident.Email)
	if errors.Is(err, shared.ErrNotFound) {
		return l.createFromIdentity(ctx, ident)
	}
	if err != nil {
		return nil, err
	}

	// Legacy records predate the change counter; infer it from whether a
	// hash is present so HasPassword stays truthful.
	if u.PasswordChanges == 0 && u.PasswordHash != "" {
		if err := l.store.SetPasswordChanges(ctx, u.ID, 1); err != nil {
			return nil, err
		}
		u.PasswordChanges = 1
	}

	updated, err := l.store.UpsertPlatform(ctx, u.ID, platformFromIdentity(ident))
	if err != nil {
		return nil, err
	}

	if updated.Avatar == nil {
		l.backfillAvatar(ctx, updated.ID, ident)
	}

	_ = l.store.TouchLastLogin(ctx, updated.ID)

	return l.store.GetByID(ctx, updated.ID)
}

func (l *Linker) createFromIdentity(ctx context.Context, ident *ProviderIdentity) (*User, error) {
	now := time.Now()
	u := &User{
		Email:           ident.Email,
		Username:        "user_" + ident.Sub,
		Name:            ident.Name,
		PasswordChanges: 0,
		PrimaryProvider: ident.Provider,
		EmailVerified:   &now,
		Platforms:       PlatformList{platformFromIdentity(ident)},
	}

	if avatar := l.fetchAvatar(ctx, ident); avatar != nil {
		u.Avatar = avatar
	}

	if err := l.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (l *Linker) backfillAvatar(ctx context.Context, userID string, ident *ProviderIdentity) {
	avatar := l.fetchAvatar(ctx, ident)
	if avatar == nil {
		return
	}
	if err := l.store.SetAvatar(ctx, userID, avatar); err != nil {
		l.logger.Warn("failed to store avatar", "error", err, "user_id", userID)
	}
}

// fetchAvatar is best effort: a provider CDN hiccup must never fail the
// sign-in itself.
func (l *Linker) fetchAvatar(ctx context.Context, ident *ProviderIdentity) *Avatar {
	if l.avatars == nil || ident.AvatarURL == "" {
		return nil
	}

	filename := string(ident.Provider) + "-" + ident.Username + ".jpg"
	avatar, err := l.avatars.Fetch(ctx, ident.AvatarURL, filename)
	if err != nil {
		l.logger.Warn("avatar fetch failed", "error", err, "provider", ident.Provider)
		return nil
	}
	return avatar
}

func platformFromIdentity(ident *ProviderIdentity) ConnectedPlatform {
	now := time.Now()
	return ConnectedPlatform{
		Provider:    ident.Provider,
		Username:    ident.Username,
		ProfileURL:  ident.ProfileURL,
		ConnectedAt: now,
		LastUsedAt:  now,
	}
}
