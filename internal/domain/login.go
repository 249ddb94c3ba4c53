package domain

// Redirect is a one-time redirect to an organization's identity provider,
// issued by the SSO broker. It is consumed immediately and never persisted.
type Redirect struct {
	URL string
}

// Redemption is the verified identity the broker returns in exchange for a
// one-time access code. The broker has already validated the SAML assertion;
// the email is treated as authoritative.
type Redemption struct {
	Email string
}
