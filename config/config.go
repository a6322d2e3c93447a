package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config is read once from the environment at startup. Every key has a
// development default; optional integrations stay off while their
// address is empty.
type Config struct {
	AppName  string
	Env      string // development, staging, production
	Port     string
	GinMode  string
	LogLevel string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration
	DBSlowQuery   time.Duration // zero disables slow query logging

	MigrationsDir string

	// Redis backs rate limits and the listing cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HouseCacheTTL time.Duration // zero disables the cache

	// Rate limit bypass, comma-separated CIDRs or addresses
	RateLimitTrustedCIDRs string

	// Listing images
	GCSBucket              string
	GCSCredentialsJSONPath string // empty uses Application Default Credentials

	// A zero TTL issues tokens without an exp claim.
	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins string // comma-separated

	// Welcome email pipeline
	MailSendEnabled    bool
	RabbitMQURL        string
	RabbitMQEmailQueue string
	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSender      string
	MailgunAPIBase     string // empty uses the US region

	// Listing search
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESHousesIndex      string

	// Email links
	CompanyName string
	AppURL      string
	SupportURL  string

	DebugMetricsEnabled bool // /api/debug/vars
	HTTPLogEnabled      bool
}

// envReader collects every malformed value instead of stopping at the first.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (r *envReader) num(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return i
}

func (r *envReader) flag(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func (r *envReader) dur(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not a non-negative duration", key, v))
		return def
	}
	return d
}

// Load reads the configuration. Malformed values fall back to their
// defaults and are all reported in the returned error, so callers may log
// it and continue or refuse to start.
func Load() (*Config, error) {
	r := &envReader{}
	cfg := &Config{
		AppName:  r.str("APP_NAME", "timbr-backend"),
		Env:      r.str("APP_ENV", "development"),
		Port:     r.str("PORT", "4000"),
		GinMode:  r.str("GIN_MODE", "release"),
		LogLevel: r.str("LOG_LEVEL", ""),

		DBHost:        r.str("DB_HOST", "localhost"),
		DBPort:        r.str("DB_PORT", "5432"),
		DBUser:        r.str("DB_USER", "postgres"),
		DBPassword:    r.str("DB_PASSWORD", "postgres"),
		DBName:        r.str("DB_NAME", "timbr"),
		DBSSLMode:     r.str("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(r.num("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(r.num("DB_MIN_CONNS", 2)),
		DBMaxConnLife: r.dur("DB_MAX_CONN_LIFETIME", time.Hour),
		DBSlowQuery:   r.dur("DB_SLOW_QUERY", 250*time.Millisecond),
		MigrationsDir: r.str("MIGRATIONS_DIR", "db/migrations"),

		RedisAddr:     r.str("REDIS_ADDR", "localhost:6379"),
		RedisPassword: r.str("REDIS_PASSWORD", ""),
		RedisDB:       r.num("REDIS_DB", 0),
		HouseCacheTTL: r.dur("HOUSE_CACHE_TTL", time.Minute),

		RateLimitTrustedCIDRs: r.str("RATE_LIMIT_TRUSTED_CIDRS", ""),

		GCSBucket:              r.str("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: r.str("GCS_CREDENTIALS_JSON", ""),

		JWTSecret: r.str("JWT_SECRET", devJWTSecret),
		JWTTTL:    r.dur("JWT_TTL", 0),

		CORSAllowedOrigins: r.str("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:3000,http://127.0.0.1:8081"),

		MailSendEnabled:    r.flag("MAIL_SEND_ENABLED", false),
		RabbitMQURL:        r.str("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: r.str("RABBITMQ_EMAIL_QUEUE", "timbr.emails"),
		MailgunDomain:      r.str("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      r.str("MAILGUN_API_KEY", ""),
		MailgunSender:      r.str("MAILGUN_SENDER", ""),
		MailgunAPIBase:     r.str("MAILGUN_API_BASE", ""),

		ElasticsearchAddrs: r.str("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  r.str("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  r.str("ELASTICSEARCH_PASSWORD", ""),
		ESHousesIndex:      r.str("ES_HOUSES_INDEX", "houses"),

		CompanyName: r.str("COMPANY_NAME", "timbr"),
		AppURL:      r.str("APP_URL", "http://localhost:8081"),
		SupportURL:  r.str("SUPPORT_URL", ""),

		DebugMetricsEnabled: r.flag("DEBUG_METRICS_ENABLED", true),
		HTTPLogEnabled:      r.flag("HTTP_LOG_ENABLED", false),
	}
	errs := append(r.errs, cfg.validate()...)
	return cfg, errors.Join(errs...)
}

func (c *Config) validate() []error {
	var errs []error
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns))
	}
	if c.MailSendEnabled && c.RabbitMQURL == "" {
		errs = append(errs, errors.New("MAIL_SEND_ENABLED requires RABBITMQ_URL"))
	}
	return errs
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// PostgresDSN renders a postgres:// URL for pgx and golang-migrate.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c *Config) CORSOrigins() []string { return splitCSV(c.CORSAllowedOrigins) }

func (c *Config) ESAddrs() []string { return splitCSV(c.ElasticsearchAddrs) }

func (c *Config) RateLimitTrusted() []string { return splitCSV(c.RateLimitTrustedCIDRs) }

func splitCSV(s string) []string {
	var res []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
