package detection

import (
	"net/url"
	"strings"
)

// DefaultTrustedDomains is the built-in allowlist used when no external
// source (e.g. the postgres-backed store) is configured
var DefaultTrustedDomains = []string{
	"zoom.us",
	"google.com",
	"microsoft.com",
	"outlook.com",
	"paypal.com",
	"netflix.com",
	"drive.google.com",
}

// Allowlist short-circuits link verdicts for known-trusted domains
//
// Precedence decision: an allowlisted domain always wins — no rule or model
// runs once a URL is trusted, even a statistical model that disagrees.
// Administrators use this to force benign treatment of their own services.
type Allowlist struct {
	domains []string
}

// NewAllowlist creates an allowlist over the given trusted domains.
// Nil or empty falls back to DefaultTrustedDomains.
func NewAllowlist(trustedDomains []string) *Allowlist {
	if len(trustedDomains) == 0 {
		trustedDomains = DefaultTrustedDomains
	}

	domains := make([]string, len(trustedDomains))
	for i, d := range trustedDomains {
		domains[i] = strings.ToLower(d)
	}
	return &Allowlist{domains: domains}
}

// IsTrusted reports whether the URL's host matches a trusted domain
//
// The match is a substring check against the HOST component only. Matching
// the whole URL would let a malicious site embed a trusted string in its
// path ("http://evil.com/paypal.com") and defeat the check.
func (a *Allowlist) IsTrusted(rawURL string) bool {
	host := extractHost(rawURL)
	if host == "" {
		return false
	}

	for _, domain := range a.domains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// Domains returns a copy of the trusted set, for display
func (a *Allowlist) Domains() []string {
	out := make([]string, len(a.domains))
	copy(out, a.domains)
	return out
}

// extractHost pulls the host component out of a URL, degrading gracefully:
// if url.Parse rejects the string, fall back to slicing off the scheme and
// cutting at the first path separator. Returns "" only when there is no
// host-like component at all.
func extractHost(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		return strings.ToLower(parsed.Host)
	}

	trimmed := rawURL
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
	}
	host, _, _ := strings.Cut(trimmed, "/")
	return strings.ToLower(host)
}
