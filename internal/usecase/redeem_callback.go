package usecase

import (
	"context"
	"log/slog"

	"sso-portal/internal/domain"
)

// RedeemCallback completes a SAML login: it exchanges the one-time access
// code for the verified email and commits that identity into the session.
type RedeemCallback struct {
	broker domain.Broker
	store  domain.SessionStore
	logger *slog.Logger
}

// NewRedeemCallback creates a new RedeemCallback usecase.
func NewRedeemCallback(b domain.Broker, s domain.SessionStore, l *slog.Logger) *RedeemCallback {
	return &RedeemCallback{broker: b, store: s, logger: l}
}

// Execute redeems the access code and, only on success, writes the verified
// email into the session. A failed redemption leaves the session exactly as
// it was: a concurrent second redemption of the same code fails broker-side
// and must not disturb the session committed by the first.
func (uc *RedeemCallback) Execute(ctx context.Context, sessionID, code string) (string, error) {
	redemption, err := uc.broker.RedeemAccessCode(ctx, code)
	if err != nil {
		uc.logger.WarnContext(ctx, "access code redemption failed", "error", err.Error())
		return "", err
	}

	if err := uc.store.Set(ctx, sessionID, redemption.Email); err != nil {
		uc.logger.ErrorContext(ctx, "failed to persist session", "error", err.Error())
		return "", err
	}

	uc.logger.InfoContext(ctx, "saml login completed", "email", redemption.Email)
	return redemption.Email, nil
}
