package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Catalog   ServiceConfig   `yaml:"catalog"   env-prefix:"CATALOG_"`
	Grants    ServiceConfig   `yaml:"grants"    env-prefix:"GRANTS_"`
	Events    EventsConfig    `yaml:"events"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout bounds every statement server-side; zero leaves the
	// server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
	// TxIsolation is read_committed, repeatable_read or serializable.
	TxIsolation string `yaml:"tx_isolation" env:"DATABASE_TX_ISOLATION" env-default:"read_committed"`
}

// AuthConfig holds bearer token settings. Tokens carry the caller id in
// "sub" and the administered domains in the "domains" claim.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"domainshare"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits requests per caller (principal or client IP) on the API routes.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"120"`
	DecisionsPerMin int           `yaml:"decisions_per_min" env:"RATE_LIMIT_DECISIONS_PER_MIN" env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// ServiceConfig describes an outbound HTTP dependency.
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"TIMEOUT"  env-default:"5s"`
	Token   string        `yaml:"token"    env:"TOKEN"`
}

// EventsConfig configures the owning-domain notification channel.
// An empty BaseURL logs events instead of delivering them.
type EventsConfig struct {
	BaseURL string        `yaml:"base_url" env:"EVENTS_BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"EVENTS_TIMEOUT"  env-default:"3s"`
	Token   string        `yaml:"token"    env:"EVENTS_TOKEN"`
}

// WorkflowConfig holds orchestrator settings.
type WorkflowConfig struct {
	// RecoveryInterval is how often the sweeper looks for stalled instances.
	RecoveryInterval time.Duration `yaml:"recovery_interval" env:"WORKFLOW_RECOVERY_INTERVAL" env-default:"30s"`
	// StaleAfter is how long a runnable instance may sit untouched before the
	// sweeper picks it up.
	StaleAfter         time.Duration `yaml:"stale_after"          env:"WORKFLOW_STALE_AFTER"          env-default:"1m"`
	RecoveryBatchSize  int           `yaml:"recovery_batch_size"  env:"WORKFLOW_RECOVERY_BATCH_SIZE"  env-default:"100"`
	MaxConflictRetries int           `yaml:"max_conflict_retries" env:"WORKFLOW_MAX_CONFLICT_RETRIES" env-default:"3"`
}

// AllowedOriginList splits AllowedOrigins into trimmed, non-empty entries.
func (c CORSConfig) AllowedOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
