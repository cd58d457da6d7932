package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/sentinelai/phishguard/internal/domain/detection"
)

// PostgresAllowlist implements ports.AllowlistStore for PostgreSQL
//
// The trusted-domain set is administrative configuration, not analysis output:
// analysis reports themselves are never persisted. Keeping the allowlist in
// postgres lets operators extend the override set without redeploying.
type PostgresAllowlist struct {
	db *sql.DB
}

// NewPostgresAllowlist creates a new PostgreSQL allowlist store
func NewPostgresAllowlist(connStr string) (*PostgresAllowlist, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Connection pool settings
	// The allowlist is read once at startup plus occasional admin writes,
	// so a tiny pool is plenty
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresAllowlist{db: db}, nil
}

// Close closes the database connection
func (s *PostgresAllowlist) Close() error {
	return s.db.Close()
}

// InitSchema creates the trusted_domains table if needed and seeds it with the
// built-in defaults
// In production, use proper migration tools
func (s *PostgresAllowlist) InitSchema() error {
	schema := `
	-- Trusted domains always classified benign, checked before any other signal.
	-- Lowercased on insert; matched as substring of a URL's host component.
	CREATE TABLE IF NOT EXISTS trusted_domains (
		id UUID PRIMARY KEY,
		domain VARCHAR(254) NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT NOW()
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed the defaults so a fresh database behaves like the built-in set
	for _, domain := range detection.DefaultTrustedDomains {
		if err := s.AddTrustedDomain(context.Background(), domain); err != nil {
			return fmt.Errorf("failed to seed trusted domain %q: %w", domain, err)
		}
	}

	return nil
}

// ListTrustedDomains returns every trusted domain, lowercased
func (s *PostgresAllowlist) ListTrustedDomains(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT LOWER(domain) FROM trusted_domains ORDER BY domain`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trusted domains: %w", err)
	}
	defer rows.Close()

	domains := make([]string, 0)
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan trusted domain: %w", err)
		}
		domains = append(domains, domain)
	}

	return domains, rows.Err()
}

// AddTrustedDomain adds a domain to the trusted set (no-op if already present)
func (s *PostgresAllowlist) AddTrustedDomain(ctx context.Context, domain string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trusted_domains (id, domain) VALUES ($1, LOWER($2))
		 ON CONFLICT (domain) DO NOTHING`,
		uuid.New(), domain)
	if err != nil {
		return fmt.Errorf("failed to insert trusted domain: %w", err)
	}
	return nil
}
