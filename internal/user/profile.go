package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/checkmate-app/checkmate/internal/auth"
	"github.com/checkmate-app/checkmate/internal/dto"
	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/labstack/echo/v4"
)

// ProfileHandler covers the profile-edit surface. It shares the user store
// with the auth handler but registers under /profile.
type ProfileHandler struct {
	store *Store
}

func NewProfileHandler(store *Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.PUT("", h.Update)
	g.PUT("/avatar", h.UpdateAvatar)
}

// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ProfileUpdateRequest  true  "profile fields"
// @Success      200   {object}  dto.Session
// @Failure      409   {object}  shared.APIError
// @Security     SessionAuth
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.store.UpdateProfile(c.Request().Context(), userID, req.Name, req.Email, req.Username)
	if err != nil {
		var conflict *shared.ConflictError
		if errors.As(err, &conflict) {
			return shared.NewAPIError("validation_failed", "validation failed").
				WithDetails(map[string]string{
					conflict.Field: "this " + conflict.Field + " is already in use",
				}).
				ToHTTP(http.StatusConflict)
		}
		return shared.InternalError("profile_update_failed", "could not update profile")
	}

	return c.JSON(http.StatusOK, Project(u))
}

// @Summary      Update avatar
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AvatarUpdateRequest  true  "avatar payload"
// @Success      200   {object}  dto.SuccessResponse
// @Security     SessionAuth
// @Router       /profile/avatar [put]
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	userID, err := auth.RequireSession(c)
	if err != nil {
		return err
	}

	var req dto.AvatarUpdateRequest
	if err := c.Bind(&req); err != nil || req.Avatar == nil {
		return shared.BadRequest("invalid_request", "avatar payload is required")
	}

	now := time.Now()
	avatar := &Avatar{
		Filename:    req.Avatar.Filename,
		ContentType: req.Avatar.ContentType,
		Base64:      req.Avatar.Base64,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.SetAvatar(c.Request().Context(), userID, avatar); err != nil {
		return shared.InternalError("avatar_update_failed", "failed to update avatar")
	}

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
