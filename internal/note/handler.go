package note

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/checkmate-app/checkmate/internal/auth"
	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/labstack/echo/v4"
)

type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

type Handler struct {
	store      *Store
	embeddings EmbeddingService
	logger     *slog.Logger
}

func NewHandler(store *Store, embeddings EmbeddingService, logger *slog.Logger) *Handler {
	return &Handler{
		store:      store,
		embeddings: embeddings,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(notes, folders, tags *echo.Group) {
	notes.GET("", h.List)
	notes.POST("", h.Create)
	notes.GET("/search", h.Search)
	notes.GET("/:id", h.Get)
	notes.PATCH("/:id", h.Update)
	notes.DELETE("/:id", h.Delete)

	folders.GET("", h.ListFolders)
	folders.POST("", h.CreateFolder)
	folders.DELETE("/:id", h.DeleteFolder)

	tags.GET("", h.ListTags)
	tags.POST("", h.CreateTag)
	tags.DELETE("/:id", h.DeleteTag)
}

// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Param        folder_id  query    string  false  "only notes in this folder"
// @Success      200  {array}  note.Note
// @Security     SessionAuth
// @Router       /notes [get]
func (h *Handler) List(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var folderID *string
	if f := c.QueryParam("folder_id"); f != "" {
		folderID = &f
	}

	notes, err := h.store.ListByUser(c.Request().Context(), userID, folderID)
	if err != nil {
		h.logger.Error("failed to list notes", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "could not load notes")
	}

	return c.JSON(http.StatusOK, notes)
}

// @Summary      Create note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateNoteRequest  true  "note"
// @Success      201   {object}  note.Note
// @Security     SessionAuth
// @Router       /notes [post]
func (h *Handler) Create(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	n := &Note{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.IsPinned,
		Tags:    TagIDs(req.Tags),
	}
	if req.FolderID != "" {
		n.FolderID = &req.FolderID
	}

	if err := h.store.Create(c.Request().Context(), n); err != nil {
		h.logger.Error("failed to create note", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "could not create note")
	}

	go h.updateEmbedding(n)

	return c.JSON(http.StatusCreated, n)
}

// @Summary      Get note
// @Tags         notes
// @Produce      json
// @Param        id  path  string  true  "note id"
// @Success      200  {object}  note.Note
// @Failure      404  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /notes/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	n, err := h.store.GetByID(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("note_not_found", "note not found")
		}
		h.logger.Error("failed to load note", "error", err, "user_id", userID)
		return shared.InternalError("get_failed", "could not load note")
	}

	return c.JSON(http.StatusOK, n)
}

// @Summary      Update note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "note id"
// @Param        body  body      dto.UpdateNoteRequest  true  "fields to change"
// @Success      200   {object}  note.Note
// @Failure      404   {object}  shared.APIError
// @Security     SessionAuth
// @Router       /notes/{id} [patch]
func (h *Handler) Update(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.IsPinned != nil {
		fields["pinned"] = *req.IsPinned
	}
	if req.Tags != nil {
		fields["tags"] = TagIDs(*req.Tags)
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

	id := c.Param("id")
	if err := h.store.Update(c.Request().Context(), id, userID, fields); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("note_not_found", "note not found")
		}
		h.logger.Error("failed to update note", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "could not update note")
	}

	n, err := h.store.GetByID(c.Request().Context(), id, userID)
	if err != nil {
		h.logger.Error("failed to reload note", "error", err, "user_id", userID)
		return shared.InternalError("update_failed", "could not load updated note")
	}

	go h.updateEmbedding(n)

	return c.JSON(http.StatusOK, n)
}

// @Summary      Delete note
// @Tags         notes
// @Param        id  path  string  true  "note id"
// @Success      204  "deleted"
// @Failure      404  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /notes/{id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.store.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("note_not_found", "note not found")
		}
		h.logger.Error("failed to delete note", "error", err, "user_id", userID)
		return shared.InternalError("delete_failed", "could not delete note")
	}

	go h.store.DeleteEmbedding(context.Background(), id)

	return c.NoContent(http.StatusNoContent)
}

// @Summary      Search notes
// @Tags         notes
// @Produce      json
// @Param        q      query  string  true   "search text"
// @Param        limit  query  int     false  "max results (default 10, max 50)"
// @Success      200  {array}   note.Note
// @Failure      400  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /notes/search [get]
func (h *Handler) Search(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	if query == "" {
		return shared.BadRequest("missing_query", "search query is required")
	}

	limit := 10
	if l := c.QueryParam("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	if h.embeddings == nil {
		return shared.InternalError("search_unavailable", "search is not available")
	}

	embedding, err := h.embeddings.Generate(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("failed to embed search query", "error", err, "user_id", userID)
		return shared.InternalError("search_failed", "failed to process search query")
	}

	notes, err := h.store.SearchByEmbedding(c.Request().Context(), userID, embedding, limit)
	if err != nil {
		h.logger.Error("failed to search notes", "error", err, "user_id", userID)
		return shared.InternalError("search_failed", "failed to search notes")
	}

	return c.JSON(http.StatusOK, notes)
}

// @Summary      List note folders
// @Tags         notes
// @Produce      json
// @Success      200  {array}  note.Folder
// @Security     SessionAuth
// @Router       /notes-folders [get]
func (h *Handler) ListFolders(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	folders, err := h.store.ListFolders(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list note folders", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "could not load folders")
	}

	return c.JSON(http.StatusOK, folders)
}

// @Summary      Create note folder
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateNoteFolderRequest  true  "folder"
// @Success      201   {object}  note.Folder
// @Security     SessionAuth
// @Router       /notes-folders [post]
func (h *Handler) CreateFolder(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.CreateNoteFolderRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f := &Folder{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if req.ParentID != "" {
		f.ParentID = &req.ParentID
	}

	if err := h.store.CreateFolder(c.Request().Context(), f); err != nil {
		h.logger.Error("failed to create note folder", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "could not create folder")
	}

	return c.JSON(http.StatusCreated, f)
}

// @Summary      Delete note folder
// @Tags         notes
// @Param        id  path  string  true  "folder id"
// @Success      204  "deleted"
// @Failure      404  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /notes-folders/{id} [delete]
func (h *Handler) DeleteFolder(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteFolder(c.Request().Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("folder_not_found", "folder not found")
		}
		h.logger.Error("failed to delete note folder", "error", err, "user_id", userID)
		return shared.InternalError("delete_failed", "could not delete folder")
	}

	return c.NoContent(http.StatusNoContent)
}

// @Summary      List tags
// @Tags         notes
// @Produce      json
// @Success      200  {array}  note.Tag
// @Security     SessionAuth
// @Router       /tags [get]
func (h *Handler) ListTags(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	tags, err := h.store.ListTags(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list tags", "error", err, "user_id", userID)
		return shared.InternalError("list_failed", "could not load tags")
	}

	return c.JSON(http.StatusOK, tags)
}

// @Summary      Create tag
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTagRequest  true  "tag"
// @Success      201   {object}  note.Tag
// @Failure      409   {object}  shared.APIError
// @Security     SessionAuth
// @Router       /tags [post]
func (h *Handler) CreateTag(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t := &Tag{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}

	if err := h.store.CreateTag(c.Request().Context(), t); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return shared.Conflict("tag_exists", "a tag with this name already exists")
		}
		h.logger.Error("failed to create tag", "error", err, "user_id", userID)
		return shared.InternalError("create_failed", "could not create tag")
	}

	return c.JSON(http.StatusCreated, t)
}

// @Summary      Delete tag
// @Tags         notes
// @Param        id  path  string  true  "tag id"
// @Success      204  "deleted"
// @Failure      404  {object}  shared.APIError
// @Security     SessionAuth
// @Router       /tags/{id} [delete]
func (h *Handler) DeleteTag(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteTag(c.Request().Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("tag_not_found", "tag not found")
		}
		h.logger.Error("failed to delete tag", "error", err, "user_id", userID)
		return shared.InternalError("delete_failed", "could not delete tag")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) updateEmbedding(n *Note) {
	if h.embeddings == nil {
		return
	}
	ctx := context.Background()
	embedding, err := h.embeddings.Generate(ctx, n.Title+" "+n.Content)
	if err != nil {
		return
	}
	h.store.UpsertEmbedding(ctx, n.ID, embedding)
}
