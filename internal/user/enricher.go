package user

import (
	"context"
	"errors"

	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/checkmate-app/checkmate/internal/shared"
)

// Enricher re-projects the canonical user record into the per-request
// session on every read, so password state, avatar and platform links are
// never served from a stale token.
type Enricher struct {
	store *Store
}

func NewEnricher(store *Store) *Enricher {
	return &Enricher{store: store}
}

// Enrich hydrates the stub session from the store. A session whose backing
// user no longer exists comes back with the ID cleared and no error; route
// guards treat the missing ID as unauthenticated. A store failure is fatal
// for the request: no stale enrichment.
func (e *Enricher) Enrich(ctx context.Context, stub *dto.Session) (*dto.Session, error) {
	if stub == nil || stub.Email == "" {
		return stub, nil
	}

	u, err := e.store.GetByEmail(ctx, stub.Email)
	if errors.Is(err, shared.ErrNotFound) {
		gone := *stub
		gone.ID = ""
		return &gone, nil
	}
	if err != nil {
		return nil, err
	}

	return Project(u), nil
}

// Project builds the display-safe session view of a user record.
func Project(u *User) *dto.Session {
	s := &dto.Session{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		Email:           u.Email,
		HasPassword:     u.PasswordChanges > 0,
		PasswordChanges: u.PasswordChanges,
		PrimaryProvider: u.PrimaryProvider.String(),
	}

	if u.Avatar != nil {
		s.Avatar = &dto.AvatarView{
			Base64:      u.Avatar.Base64,
			ContentType: u.Avatar.ContentType,
			Filename:    u.Avatar.Filename,
		}
	}

	for _, p := range u.Platforms {
		s.Platforms = append(s.Platforms, dto.PlatformView{
			Provider:    p.Provider.String(),
			Username:    p.Username,
			ProfileURL:  p.ProfileURL,
			ConnectedAt: p.ConnectedAt,
		})
	}

	return s
}
