package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"sso-portal/internal/domain"
	"sso-portal/internal/usecase"
)

func newLoginHandler(t *testing.T, broker domain.Broker) *LoginHandler {
	t.Helper()
	return NewLoginHandler(usecase.NewInitiateLogin(broker, slog.Default()), testRenderer(t))
}

func TestLoginHandler_RedirectsToIdP(t *testing.T) {
	broker := &mockBroker{redirect: &domain.Redirect{URL: "https://idp.example.com/sso/start"}}
	h := newLoginHandler(t, broker)

	c, rec := newTestContext(t, "/saml-redirect?email=john.doe@example.com")
	assert.NoError(t, h.Handle(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://idp.example.com/sso/start", rec.Header().Get("Location"))
}

func TestLoginHandler_MissingEmail(t *testing.T) {
	h := newLoginHandler(t, &mockBroker{})

	c, rec := newTestContext(t, "/saml-redirect")
	assert.NoError(t, h.Handle(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email address")
	assert.Empty(t, rec.Header().Get("Location"), "failure must not redirect")
}

func TestLoginHandler_MalformedEmail(t *testing.T) {
	h := newLoginHandler(t, &mockBroker{})

	c, rec := newTestContext(t, "/saml-redirect?email=not-an-email")
	assert.NoError(t, h.Handle(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email address")
}

func TestLoginHandler_UnknownOrganization(t *testing.T) {
	h := newLoginHandler(t, &mockBroker{err: domain.ErrUnknownOrganization})

	c, rec := newTestContext(t, "/saml-redirect?email=jane@unregistered-domain.test")
	assert.NoError(t, h.Handle(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown organization")
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestLoginHandler_BrokerUnavailable(t *testing.T) {
	h := newLoginHandler(t, &mockBroker{err: domain.ErrBrokerUnavailable})

	c, rec := newTestContext(t, "/saml-redirect?email=john.doe@example.com")
	assert.NoError(t, h.Handle(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Service temporarily unavailable")
}
