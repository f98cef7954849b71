package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL)
	}

	switch c.Database.TxIsolation {
	case "", "read_committed", "repeatable_read", "serializable":
	default:
		return fmt.Errorf("database.tx_isolation must be read_committed, repeatable_read or serializable (got %q)", c.Database.TxIsolation)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := validateBaseURL(c.Catalog.BaseURL); err != nil {
		return fmt.Errorf("catalog.base_url: %w", err)
	}
	if err := validateBaseURL(c.Grants.BaseURL); err != nil {
		return fmt.Errorf("grants.base_url: %w", err)
	}
	if c.Events.BaseURL != "" {
		if err := validateBaseURL(c.Events.BaseURL); err != nil {
			return fmt.Errorf("events.base_url: %w", err)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.DecisionsPerMin <= 0) {
		return fmt.Errorf("rate_limit: limits must be > 0 when enabled")
	}

	if err := c.Workflow.validate(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}

	return nil
}

func (w *WorkflowConfig) validate() error {
	if w.RecoveryInterval <= 0 {
		return fmt.Errorf("recovery_interval must be > 0 (got %s)", w.RecoveryInterval)
	}
	if w.StaleAfter < 0 {
		return fmt.Errorf("stale_after must be >= 0 (got %s)", w.StaleAfter)
	}
	if w.RecoveryBatchSize <= 0 {
		return fmt.Errorf("recovery_batch_size must be > 0 (got %d)", w.RecoveryBatchSize)
	}
	if w.MaxConflictRetries < 1 {
		return fmt.Errorf("max_conflict_retries must be >= 1 (got %d)", w.MaxConflictRetries)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
