package settings

import (
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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.Get)
	g.PUT("", h.Update)
}

// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settings.Settings
// @Security     SessionAuth
// @Router       /settings [get]
func (h *Handler) Get(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	st, err := h.store.GetOrCreate(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err, "user_id", userID)
		return shared.InternalError("settings_failed", "could not load settings")
	}

	return c.JSON(http.StatusOK, st)
}

// @Summary      Update settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateSettingsRequest  true  "settings"
// @Success      200   {object}  settings.Settings
// @Security     SessionAuth
// @Router       /settings [put]
func (h *Handler) Update(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	fields := map[string]any{}
	if req.Theme != nil {
		fields["theme"] = *req.Theme
	}
	if req.Wallpaper != nil {
		fields["wallpaper"] = *req.Wallpaper
	}

	st, err := h.store.Update(c.Request().Context(), userID, fields)
	if err != nil {
		h.logger.Error("failed to update settings", "error", err, "user_id", userID)
		return shared.InternalError("settings_failed", "could not update settings")
	}

	return c.JSON(http.StatusOK, st)
}
