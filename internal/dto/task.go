package dto

import "time"

type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	FolderID    string    `json:"folder_id,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Done        *bool      `json:"done,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	FolderID    *string    `json:"folder_id,omitempty"`
}

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
