package usecase

import (
	"context"
	"log/slog"

	"sso-portal/internal/domain"
)

// Logout returns a session to anonymous. Unconditional and idempotent:
// logging out an already-anonymous session is a no-op.
type Logout struct {
	store  domain.SessionStore
	logger *slog.Logger
}

// NewLogout creates a new Logout usecase.
func NewLogout(s domain.SessionStore, l *slog.Logger) *Logout {
	return &Logout{store: s, logger: l}
}

// Execute clears the session's identity.
func (uc *Logout) Execute(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.store.Clear(ctx, sessionID); err != nil {
		uc.logger.WarnContext(ctx, "failed to clear session", "error", err.Error())
		return err
	}
	return nil
}
