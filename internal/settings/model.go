package settings

import "time"

const (
	DefaultTheme     = "custom"
	DefaultWallpaper = "/wallpapers/default.jpg"
)

type Settings struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Theme     string    `gorm:"not null" json:"theme"`
	Wallpaper string    `gorm:"not null" json:"wallpaper"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
