package usecase

import (
	"context"

	"sso-portal/internal/domain"
)

// CurrentUser reads the identity held by a session. Expiry is observed
// passively: an expired session simply reads as anonymous.
type CurrentUser struct {
	store domain.SessionStore
}

// NewCurrentUser creates a new CurrentUser usecase.
func NewCurrentUser(s domain.SessionStore) *CurrentUser {
	return &CurrentUser{store: s}
}

// Execute returns the session's email, or ok=false for an anonymous session.
func (uc *CurrentUser) Execute(ctx context.Context, sessionID string) (string, bool, error) {
	if sessionID == "" {
		return "", false, nil
	}
	return uc.store.Get(ctx, sessionID)
}
