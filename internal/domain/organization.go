package domain

import (
	"fmt"
	"strings"
)

// OrganizationFromEmail derives the organization identifier for an email
// address: the domain part, used verbatim as the broker's external
// organization ID. No case folding or punycode normalization is applied; the
// broker is the system of record for organization lookup.
func OrganizationFromEmail(rawEmail string) (string, error) {
	local, org, found := strings.Cut(rawEmail, "@")
	if !found || local == "" || org == "" || strings.Contains(org, "@") {
		return "", fmt.Errorf("%w: %q", ErrMalformedEmail, rawEmail)
	}
	return org, nil
}
