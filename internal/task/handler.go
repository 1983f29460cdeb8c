package task

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/checkmate-app/checkmate/internal/auth"
	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(tasks, folders *echo.Group) {
	tasks.GET("", h.List)
	tasks.POST("", h.Create)
	tasks.PATCH("/:id", h.Update)
	tasks.DELETE("/:id", h.Delete)

	folders.GET("", h.ListFolders)
	folders.POST("", h.CreateFolder)
	folders.DELETE("/:id", h.DeleteFolder)
}

// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  task.Task
// @Security     SessionAuth
// @Router       /tasks [get]
func (h *Handler) List(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	tasks, err := h.store.ListByUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "could not load tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "task"
// @Success      201   {object}  task.Task
// @Security     SessionAuth
// @Router       /tasks [post]
func (h *Handler) Create(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t := &Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.FolderID != "" {
		t.FolderID = &req.FolderID
	}

	if err := h.store.Create(c.Request().Context(), t); err != nil {
		h.logger.Error("failed to create task", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "could not create task")
	}

	return c.JSON(http.StatusCreated, t)
}

// @Summary      Update task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "task id"
// @Param        body  body      dto.UpdateTaskRequest  true  "fields to change"
// @Success      200   {object}  task.Task
// @Failure      404   {object}  shared.APIError
// @Security     SessionAuth
// @Router       /tasks/{id} [patch]
func (h *Handler) Update(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Done != nil {
		fields["done"] = *req.Done
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.FolderID != nil {
		if *req.FolderID == "" {
			fields["folder_id"] = nil
		} else {
			fields["folder_id"] = *req.FolderID
		}
	}
	if len(fields) == 0 {
		return shared.BadRequest("empty_update", "no fields to update")
	}

	t, err := h.store.Update(c.Request().Context(), userID, c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("task_not_found", "task not found")
		}
		h.logger.Error("failed to update task", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "could not update task")
	}

	return c.JSON(http.StatusOK, t)
}

// @Summary      Delete task
// @Tags         tasks
// @Param        id  path  string  true  "task id"
// @Success      204  "No Content"
// @Failure      404  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /tasks/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	if err := h.store.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("task_not_found", "task not found")
		}
		h.logger.Error("failed to delete task", "error", err, "user_id", userID)
		return shared.InternalError("delete_failed", "could not delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

// @Summary      List task folders
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  task.Folder
// @Security     SessionAuth
// @Router       /folders [get]
func (h *Handler) ListFolders(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	folders, err := h.store.ListFolders(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list folders", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "could not load folders")
	}

	return c.JSON(http.StatusOK, folders)
}

// @Summary      Create task folder
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateFolderRequest  true  "folder"
// @Success      201   {object}  task.Folder
// @Security     SessionAuth
// @Router       /folders [post]
func (h *Handler) CreateFolder(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.CreateFolderRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f := &Folder{
		UserID: userID,
		Name:   req.Name,
	}

	if err := h.store.CreateFolder(c.Request().Context(), f); err != nil {
		h.logger.Error("failed to create folder", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "could not create folder")
	}

	return c.JSON(http.StatusCreated, f)
}

// @Summary      Delete task folder
// @Tags         tasks
// @Param        id  path  string  true  "folder id"
// @Success      204  "No Content"
// @Failure      404  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /folders/{id} [delete]
func (h *Handler) DeleteFolder(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteFolder(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("folder_not_found", "folder not found")
		}
		h.logger.Error("failed to delete folder", "error", err, "user_id", userID)
		return shared.InternalError("delete_failed", "could not delete folder")
	}

	return c.NoContent(http.StatusNoContent)
}
