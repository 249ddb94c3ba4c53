package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sso-portal/internal/domain"
)

// initiateRetries bounds how often a failed login initiation is retried.
// Initiation has no broker-side state, so retrying on transport failure is
// safe. Redemption is never retried: the code is single-use and a retry
// after an unacknowledged success would fail against an already-consumed
// code.
const initiateRetries = 2

// SSOReadyGateway talks to the SSOReady broker, which owns the SAML
// federation protocol (assertion validation, signatures, IdP metadata).
// Implements domain.Broker.
type SSOReadyGateway struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	retryWait  time.Duration
	httpClient *http.Client
}

// NewSSOReadyGateway creates a new SSOReady gateway with tuned HTTP transport.
func NewSSOReadyGateway(baseURL, apiKey string, timeout time.Duration) *SSOReadyGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &SSOReadyGateway{
		baseURL:   baseURL,
		apiKey:    apiKey,
		timeout:   timeout,
		retryWait: 250 * time.Millisecond,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type redirectRequest struct {
	OrganizationExternalID string `json:"organizationExternalId"`
}

type redirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

type redeemRequest struct {
	SAMLAccessCode string `json:"samlAccessCode"`
}

type redeemResponse struct {
	Email string `json:"email"`
}

// InitiateLogin asks the broker for a one-time redirect URL to the identity
// provider configured for org. Transport failures are retried a bounded
// number of times before surfacing as ErrBrokerUnavailable.
func (g *SSOReadyGateway) InitiateLogin(ctx context.Context, org string) (*domain.Redirect, error) {
	if org == "" {
		return nil, fmt.Errorf("%w: empty organization", domain.ErrUnknownOrganization)
	}

	var lastErr error
	for attempt := 0; attempt <= initiateRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", domain.ErrBrokerUnavailable, ctx.Err())
			case <-time.After(g.retryWait):
			}
		}

		var out redirectResponse
		status, err := g.post(ctx, "/v1/saml/redirect", redirectRequest{OrganizationExternalID: org}, &out)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case status == http.StatusOK:
			if out.RedirectURL == "" {
				return nil, fmt.Errorf("%w: missing redirectUrl in response", domain.ErrBrokerUnavailable)
			}
			return &domain.Redirect{URL: out.RedirectURL}, nil
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return nil, fmt.Errorf("%w: broker returned status %d", domain.ErrBrokerAuth, status)
		case status == http.StatusNotFound || status == http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOrganization, org)
		default:
			lastErr = fmt.Errorf("%w: broker returned status %d", domain.ErrBrokerUnavailable, status)
		}
	}
	return nil, lastErr
}

// RedeemAccessCode exchanges a one-time access code for the verified email.
// Never retried; see initiateRetries.
func (g *SSOReadyGateway) RedeemAccessCode(ctx context.Context, code string) (*domain.Redemption, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty access code", domain.ErrInvalidAccessCode)
	}

	var out redeemResponse
	status, err := g.post(ctx, "/v1/saml/redeem", redeemRequest{SAMLAccessCode: code}, &out)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		if out.Email == "" {
			return nil, fmt.Errorf("%w: missing email in response", domain.ErrBrokerUnavailable)
		}
		return &domain.Redemption{Email: out.Email}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: broker returned status %d", domain.ErrBrokerAuth, status)
	case http.StatusBadRequest, http.StatusNotFound, http.StatusGone:
		return nil, domain.ErrInvalidAccessCode
	default:
		return nil, fmt.Errorf("%w: broker returned status %d", domain.ErrBrokerUnavailable, status)
	}
}

// post sends an authenticated JSON request and decodes a 200 response into
// out. Non-200 statuses are returned for the caller to classify; transport
// failures map to ErrBrokerUnavailable.
func (g *SSOReadyGateway) post(ctx context.Context, path string, in, out any) (int, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrBrokerUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrBrokerUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrBrokerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decoding response: %w", domain.ErrBrokerUnavailable, err)
	}
	return resp.StatusCode, nil
}
