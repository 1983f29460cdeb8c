package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/checkmate-app/checkmate/internal/shared"
)

// ConnectedPlatform records one external identity linked to a user. The
// Platforms list holds at most one entry per provider.
type ConnectedPlatform struct {
	Provider    shared.Provider `json:"provider"`
	Username    string          `json:"username"`
	ProfileURL  string          `json:"profile_url,omitempty"`
	ConnectedAt time.Time       `json:"connected_at"`
	LastUsedAt  time.Time       `json:"last_used_at"`
}

type PlatformList []ConnectedPlatform

func (p PlatformList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	return json.Marshal(p)
}

func (p *PlatformList) Scan(value any) error {
	if value == nil {
		*p = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PlatformList", value)
	}

	return json.Unmarshal(bytes, p)
}

// Find returns the entry for the given provider, or nil.
func (p PlatformList) Find(provider shared.Provider) *ConnectedPlatform {
	for i := range p {
		if p[i].Provider == provider {
			return &p[i]
		}
	}
	return nil
}

// Avatar is the profile image embedded in the user record, base64-encoded.
type Avatar struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Base64      string    `json:"base64"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (a *Avatar) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Avatar) Scan(value any) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Avatar", value)
	}

	return json.Unmarshal(bytes, a)
}

type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Name     string `json:"name"`

	PasswordHash string `json:"-"`

	// PasswordChanges is the sole authority for whether credential login is
	// possible: 0 means no password has ever been set (OAuth-only account).
	PasswordChanges int `gorm:"not null;default:0" json:"password_changes"`

	PrimaryProvider shared.Provider `gorm:"not null" json:"primary_provider"`
	Platforms       PlatformList    `gorm:"type:text" json:"connected_platforms"`
	Avatar          *Avatar         `gorm:"type:text" json:"avatar,omitempty"`

	EmailVerified            *time.Time `json:"email_verified,omitempty"`
	VerificationToken        *string    `gorm:"index" json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	LastLogin time.Time `json:"last_login"`

	// Version guards read-modify-write updates of the Platforms list.
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) HasPassword() bool {
	return u.PasswordChanges > 0
}

func (u *User) IsPlatformConnected(provider shared.Provider) bool {
	return u.Platforms.Find(provider) != nil
}
