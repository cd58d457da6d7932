package ports

import "context"

// AllowlistStore defines the contract for an externally managed trusted-domain
// set. The engine itself only ever sees the resulting []string; this port
// exists so administrators can manage the override set outside the binary.
type AllowlistStore interface {
	// ListTrustedDomains returns every trusted domain, lowercased
	ListTrustedDomains(ctx context.Context) ([]string, error)

	// AddTrustedDomain adds a domain to the trusted set (idempotent)
	AddTrustedDomain(ctx context.Context, domain string) error

	// Lifecycle
	Close() error
}
