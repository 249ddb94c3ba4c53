package domain

import "errors"

// Login flow errors.
var (
	ErrMalformedEmail      = errors.New("email must contain exactly one @ separating user and domain")
	ErrUnknownOrganization = errors.New("no identity provider configured for organization")
	ErrInvalidAccessCode   = errors.New("access code is invalid, expired, or already used")
)

// External broker errors.
var (
	ErrBrokerUnavailable = errors.New("sso broker unavailable")
	ErrBrokerAuth        = errors.New("sso broker rejected service credentials")
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
