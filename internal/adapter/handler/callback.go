package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"sso-portal/internal/domain"
	"sso-portal/internal/usecase"
)

// CallbackHandler completes a SAML login when the broker redirects the
// browser back with a one-time access code.
type CallbackHandler struct {
	uc       *usecase.RedeemCallback
	codec    domain.CookieCodec
	cookie   CookieSettings
	renderer *Renderer
}

// NewCallbackHandler creates a new callback handler.
func NewCallbackHandler(uc *usecase.RedeemCallback, codec domain.CookieCodec, cookie CookieSettings, r *Renderer) *CallbackHandler {
	return &CallbackHandler{uc: uc, codec: codec, cookie: cookie, renderer: r}
}

// Handle processes GET /ssoready-callback?saml_access_code=. On success the
// verified identity is committed to the session and the browser returns to
// the home page; on failure the user sees an error page distinct from the
// success redirect, and the session keeps whatever state it had before.
func (h *CallbackHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("saml_access_code")
	if code == "" {
		return renderError(c, h.renderer, fmt.Errorf("%w: missing saml_access_code parameter", domain.ErrInvalidAccessCode))
	}

	// Reuse the browser's existing session context when present; a re-login
	// replaces its identity. Otherwise establish a fresh session ID.
	sessionID := readSessionID(c, h.codec)
	if sessionID == "" {
		var err error
		sessionID, err = newSessionID()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate session id", "error", err.Error())
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	if _, err := h.uc.Execute(ctx, sessionID, code); err != nil {
		return renderError(c, h.renderer, err)
	}

	if err := writeSessionCookie(c, h.codec, sessionID, h.cookie); err != nil {
		slog.ErrorContext(ctx, "failed to issue session cookie", "error", err.Error())
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.Redirect(http.StatusFound, "/")
}
