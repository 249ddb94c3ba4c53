package usecase

import (
	"context"
	"log/slog"

	"sso-portal/internal/domain"
)

// InitiateLogin starts a SAML login: it derives the organization from the
// submitted email and asks the broker for a redirect URL to that
// organization's identity provider. Nothing is committed to the session; the
// flow only transitions to authenticated when the access code is redeemed.
type InitiateLogin struct {
	broker domain.Broker
	logger *slog.Logger
}

// NewInitiateLogin creates a new InitiateLogin usecase.
func NewInitiateLogin(b domain.Broker, l *slog.Logger) *InitiateLogin {
	return &InitiateLogin{broker: b, logger: l}
}

// Execute resolves the organization and obtains the IdP redirect URL.
// On any failure the session stays anonymous and the error is surfaced.
func (uc *InitiateLogin) Execute(ctx context.Context, rawEmail string) (string, error) {
	org, err := domain.OrganizationFromEmail(rawEmail)
	if err != nil {
		return "", err
	}

	redirect, err := uc.broker.InitiateLogin(ctx, org)
	if err != nil {
		uc.logger.WarnContext(ctx, "saml login initiation failed",
			"organization", org,
			"error", err.Error())
		return "", err
	}

	uc.logger.InfoContext(ctx, "saml login initiated", "organization", org)
	return redirect.URL, nil
}
