package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"sso-portal/internal/domain"
	"sso-portal/internal/usecase"
)

// HomeHandler renders the home page with the current session identity.
type HomeHandler struct {
	uc       *usecase.CurrentUser
	codec    domain.CookieCodec
	renderer *Renderer
}

// NewHomeHandler creates a new home page handler.
func NewHomeHandler(uc *usecase.CurrentUser, codec domain.CookieCodec, r *Renderer) *HomeHandler {
	return &HomeHandler{uc: uc, codec: codec, renderer: r}
}

// Handle processes GET /. Reads the session, never mutates it; a store
// failure degrades to the logged-out view rather than an error page.
func (h *HomeHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := readSessionID(c, h.codec)
	email, ok, err := h.uc.Execute(ctx, sessionID)
	if err != nil {
		slog.WarnContext(ctx, "session lookup failed, rendering logged-out view",
			"error", err.Error())
		ok = false
	}

	page, err := h.renderer.Home(HomeData{LoggedIn: ok, Email: email})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.HTMLBlob(http.StatusOK, page)
}
