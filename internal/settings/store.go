package settings

import (
	"context"
	"errors"

	"github.com/checkmate-app/checkmate/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Settings{})
}

// GetOrCreate returns the user's settings, creating a row with defaults on
// first access.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (*Settings, error) {
	var st Settings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error
	if err == nil {
		return &st, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	st = Settings{
		ID:        shared.NewID("set_"),
		UserID:    userID,
		Theme:     DefaultTheme,
		Wallpaper: DefaultWallpaper,
	}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		// another request may have created the row concurrently
		var existing Settings
		if ferr := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &st, nil
}

func (s *Store) Update(ctx context.Context, userID string, fields map[string]any) (*Settings, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		err := s.db.WithContext(ctx).Model(&Settings{}).
			Where("user_id = ?", userID).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	var st Settings
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
