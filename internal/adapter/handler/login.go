package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"sso-portal/internal/domain"
	"sso-portal/internal/usecase"
)

// LoginHandler starts a SAML login for the submitted email address.
type LoginHandler struct {
	uc       *usecase.InitiateLogin
	renderer *Renderer
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(uc *usecase.InitiateLogin, r *Renderer) *LoginHandler {
	return &LoginHandler{uc: uc, renderer: r}
}

// Handle processes GET /saml-redirect?email=. On success the browser is
// redirected to the organization's identity provider; on failure the user
// sees an error page and the session stays anonymous.
func (h *LoginHandler) Handle(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return renderError(c, h.renderer, fmt.Errorf("%w: missing email parameter", domain.ErrMalformedEmail))
	}

	redirectURL, err := h.uc.Execute(c.Request().Context(), email)
	if err != nil {
		return renderError(c, h.renderer, err)
	}

	return c.Redirect(http.StatusFound, redirectURL)
}
