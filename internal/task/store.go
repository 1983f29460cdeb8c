package task

import (
	"context"
	"errors"

	"github.com/checkmate-app/checkmate/internal/shared"
	"gorm.io/gorm"
)

// Store scopes every query by the owning user id. There is no cross-user
// read or write path.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Task{}, &Folder{})
}

func (s *Store) Create(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = shared.NewID("task_")
	}
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*Task, error) {
	var tasks []*Task
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("due_date asc").Find(&tasks).Error
	return tasks, err
}

func (s *Store) GetByID(ctx context.Context, userID, id string) (*Task, error) {
	var t Task
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &t, err
}

func (s *Store) Update(ctx context.Context, userID, id string, fields map[string]any) (*Task, error) {
	result := s.db.WithContext(ctx).Model(&Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.GetByID(ctx, userID, id)
}

func (s *Store) Delete(ctx context.Context, userID, id string) error {
	result := s.db.WithContext(ctx).Delete(&Task{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) CreateFolder(ctx context.Context, f *Folder) error {
	if f.ID == "" {
		f.ID = shared.NewID("fold_")
	}
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *Store) ListFolders(ctx context.Context, userID string) ([]*Folder, error) {
	var folders []*Folder
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc").Find(&folders).Error
	return folders, err
}

// DeleteFolder removes the folder and detaches its tasks rather than
// deleting them.
func (s *Store) DeleteFolder(ctx context.Context, userID, id string) error {
	result := s.db.WithContext(ctx).Delete(&Folder{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	return s.db.WithContext(ctx).Model(&Task{}).
		Where("folder_id = ? AND user_id = ?", id, userID).
		Update("folder_id", nil).Error
}
