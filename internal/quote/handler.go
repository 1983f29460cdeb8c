package quote

import (
	"log/slog"
	"net/http"

	"github.com/checkmate-app/checkmate/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/today", h.Today)
}

// @Summary      Quote of the day
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  quote.Quote
// @Failure      500  {object}  shared.APIError
// @Router       /quotes/today [get]
func (h *Handler) Today(c echo.Context) error {
	q, err := h.service.Today(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to load daily quote", "error", err)
		return shared.InternalError("quote_failed", "could not load today's quote")
	}

	return c.JSON(http.StatusOK, q)
}
