package handler

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sso-portal/internal/domain"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "sso_portal_session"

// CookieSettings controls how the session cookie is issued.
type CookieSettings struct {
	TTL    time.Duration
	Secure bool
}

// newSessionID generates a session identifier with 256 bits of entropy.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// readSessionID extracts and verifies the session ID from the request
// cookie. An absent or unverifiable cookie reads as no session.
func readSessionID(c echo.Context, codec domain.CookieCodec) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	sessionID, err := codec.Verify(cookie.Value)
	if err != nil {
		return ""
	}
	return sessionID
}

// writeSessionCookie issues the signed session cookie.
func writeSessionCookie(c echo.Context, codec domain.CookieCodec, sessionID string, opts CookieSettings) error {
	value, err := codec.Mint(sessionID)
	if err != nil {
		return fmt.Errorf("mint session cookie: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(opts.TTL),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clearSessionCookie removes the session cookie from the client.
func clearSessionCookie(c echo.Context, opts CookieSettings) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
