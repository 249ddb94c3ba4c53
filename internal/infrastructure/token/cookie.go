package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sso-portal/internal/domain"
)

// CookieConfig holds session cookie signing configuration.
type CookieConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// JWTCookieCodec signs session IDs into HS256 JWTs for cookie transport, so
// a forged or tampered cookie is indistinguishable from no session at all.
// Implements domain.CookieCodec.
type JWTCookieCodec struct {
	cfg CookieConfig
}

// NewJWTCookieCodec creates a new cookie codec.
func NewJWTCookieCodec(cfg CookieConfig) *JWTCookieCodec {
	return &JWTCookieCodec{cfg: cfg}
}

// Mint wraps a session ID in a signed token. The token expiry matches the
// session idle timeout; the store's own TTL remains authoritative.
func (c *JWTCookieCodec) Mint(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.cfg.Issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.TTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.Secret))
}

// Verify validates a cookie value and returns the session ID it carries.
// Any signature, issuer, or expiry failure maps to domain.ErrSessionNotFound.
func (c *JWTCookieCodec) Verify(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(c.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSessionNotFound, err)
	}
	if claims.Subject == "" {
		return "", domain.ErrSessionNotFound
	}
	return claims.Subject, nil
}
