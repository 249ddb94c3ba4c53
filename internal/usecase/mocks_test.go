package usecase

import (
	"context"

	"sso-portal/internal/domain"
)

// mockBroker implements domain.Broker for testing.
type mockBroker struct {
	redirect  *domain.Redirect
	redeemed  *domain.Redemption
	err       error
	redeemErr error

	initiateCalls int
	redeemCalls   int
	lastOrg       string
	lastCode      string
}

func (m *mockBroker) InitiateLogin(_ context.Context, org string) (*domain.Redirect, error) {
	m.initiateCalls++
	m.lastOrg = org
	if m.err != nil {
		return nil, m.err
	}
	return m.redirect, nil
}

func (m *mockBroker) RedeemAccessCode(_ context.Context, code string) (*domain.Redemption, error) {
	m.redeemCalls++
	m.lastCode = code
	if m.redeemErr != nil {
		return nil, m.redeemErr
	}
	return m.redeemed, nil
}

// mockStore implements domain.SessionStore for testing.
type mockStore struct {
	sessions map[string]string
	setErr   error
	clearErr error
}

func newMockStore() *mockStore {
	return &mockStore{sessions: make(map[string]string)}
}

func (m *mockStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	email, ok := m.sessions[sessionID]
	return email, ok, nil
}

func (m *mockStore) Set(_ context.Context, sessionID, email string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sessions[sessionID] = email
	return nil
}

func (m *mockStore) Clear(_ context.Context, sessionID string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.sessions, sessionID)
	return nil
}
