package domain

import "context"

// Broker mediates SAML federation with organization identity providers.
// InitiateLogin is side-effect free and may be retried; RedeemAccessCode
// consumes a single-use code and must never be retried automatically.
type Broker interface {
	InitiateLogin(ctx context.Context, org string) (*Redirect, error)
	RedeemAccessCode(ctx context.Context, code string) (*Redemption, error)
}

// SessionStore holds the authenticated email for each browser session.
// Get returns ok=false for an unknown or expired session; err is reserved
// for backend failures, absence alone is not an error.
// Set overwrites unconditionally. Clear on an empty session is a no-op.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (email string, ok bool, err error)
	Set(ctx context.Context, sessionID, email string) error
	Clear(ctx context.Context, sessionID string) error
}

// CookieCodec mints and verifies the signed session cookie value.
type CookieCodec interface {
	Mint(sessionID string) (string, error)
	Verify(value string) (sessionID string, err error)
}
