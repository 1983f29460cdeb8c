package task

import "time"

type Task struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Done        bool      `gorm:"default:false" json:"done"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	FolderID    *string   `gorm:"index" json:"folder_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Folder groups tasks. Distinct from note folders, which live in the note
// package and carry extra metadata.
type Folder struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
