package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"sso-portal/internal/domain"
	"sso-portal/internal/usecase"
)

// LogoutHandler returns the browser's session to anonymous.
type LogoutHandler struct {
	uc     *usecase.Logout
	codec  domain.CookieCodec
	cookie CookieSettings
}

// NewLogoutHandler creates a new logout handler.
func NewLogoutHandler(uc *usecase.Logout, codec domain.CookieCodec, cookie CookieSettings) *LogoutHandler {
	return &LogoutHandler{uc: uc, codec: codec, cookie: cookie}
}

// Handle processes GET /logout. Unconditional: the cookie is cleared and
// the browser redirected home even if the store call fails, and repeating
// logout is a no-op.
func (h *LogoutHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	if sessionID := readSessionID(c, h.codec); sessionID != "" {
		if err := h.uc.Execute(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "logout store clear failed", "error", err.Error())
		}
	}

	clearSessionCookie(c, h.cookie)
	return c.Redirect(http.StatusFound, "/")
}
