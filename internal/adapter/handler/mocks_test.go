package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"sso-portal/internal/domain"
	"sso-portal/internal/infrastructure/token"
)

// mockBroker implements domain.Broker for testing.
type mockBroker struct {
	redirect  *domain.Redirect
	redeemed  *domain.Redemption
	err       error
	redeemErr error
}

func (m *mockBroker) InitiateLogin(_ context.Context, _ string) (*domain.Redirect, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.redirect, nil
}

func (m *mockBroker) RedeemAccessCode(_ context.Context, _ string) (*domain.Redemption, error) {
	if m.redeemErr != nil {
		return nil, m.redeemErr
	}
	return m.redeemed, nil
}

// mockStore implements domain.SessionStore for testing.
type mockStore struct {
	sessions map[string]string
	getErr   error
}

func newMockStore() *mockStore {
	return &mockStore{sessions: make(map[string]string)}
}

func (m *mockStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	email, ok := m.sessions[sessionID]
	return email, ok, nil
}

func (m *mockStore) Set(_ context.Context, sessionID, email string) error {
	m.sessions[sessionID] = email
	return nil
}

func (m *mockStore) Clear(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func testCodec() *token.JWTCookieCodec {
	return token.NewJWTCookieCodec(token.CookieConfig{
		Secret: "this-is-a-valid-session-secret-32-chars-long",
		Issuer: "sso-portal",
		TTL:    time.Hour,
	})
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func testCookieSettings() CookieSettings {
	return CookieSettings{TTL: time.Hour, Secure: true}
}

// newTestContext builds an echo context for the given request target.
func newTestContext(t *testing.T, target string, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// sessionCookie mints a valid session cookie for sessionID.
func sessionCookie(t *testing.T, sessionID string) *http.Cookie {
	t.Helper()

	value, err := testCodec().Mint(sessionID)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: value}
}
