package dto

import "time"

// Session is the enriched, display-safe projection of a user record. It is
// rebuilt from the store on every authenticated request so avatar, password
// state and platform links are never stale.
type Session struct {
	ID              string         `json:"id,omitempty" example:"user_abc123"`
	Username        string         `json:"username,omitempty" example:"jdoe"`
	Name            string         `json:"name,omitempty" example:"Jane Doe"`
	Email           string         `json:"email" example:"jane@example.com"`
	Avatar          *AvatarView    `json:"avatar,omitempty"`
	HasPassword     bool           `json:"has_password"`
	PasswordChanges int            `json:"password_changes"`
	PrimaryProvider string         `json:"primary_provider,omitempty" example:"github"`
	Platforms       []PlatformView `json:"connected_platforms,omitempty"`
}

// Resolved reports whether the session maps onto a live user record. Route
// guards treat an unresolved session as unauthenticated.
func (s *Session) Resolved() bool {
	return s != nil && s.ID != ""
}

type AvatarView struct {
	Base64      string `json:"base64"`
	ContentType string `json:"content_type" example:"image/jpeg"`
	Filename    string `json:"filename" example:"github-jdoe.jpg"`
}

// PlatformView is the redacted projection of a connected platform. No
// internal tokens or last-used bookkeeping leave the server.
type PlatformView struct {
	Provider    string    `json:"provider" example:"github"`
	Username    string    `json:"username" example:"jdoe"`
	ProfileURL  string    `json:"profile_url,omitempty" example:"https://github.com/jdoe"`
	ConnectedAt time.Time `json:"connected_at"`
}
