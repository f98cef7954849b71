package domain

import "slices"

// Principal is an authenticated caller together with the domains it administers.
type Principal struct {
	ID      string
	Domains []string
}

// Administers reports whether the principal may act on behalf of domainID.
func (p Principal) Administers(domainID string) bool {
	return domainID != "" && slices.Contains(p.Domains, domainID)
}

// GrantPrincipal is the principal identifier the grant service uses for a
// domain's data consumers.
func GrantPrincipal(domainID string) string {
	return "domain:" + domainID
}
