package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Global singleton for code paths that are not wired through the injector.
var globalConfig *Config

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"

	// DedupScopeURL drops a url already seen anywhere in the report batch.
	DedupScopeURL = "url"
	// DedupScopeGroup drops a url only when it repeats inside the same group name.
	DedupScopeGroup = "group"
)

// Config holds all environment backed configuration.
type Config struct {
	// HTTP Server
	HTTPPort           int      `env:"HTTP_PORT" envDefault:"8000"`
	APIPrefix          string   `env:"API_PREFIX" envDefault:"/api/v1"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	EnableSwagger      bool     `env:"ENABLE_SWAGGER" envDefault:"true"`

	// Database
	DatabaseDriver string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL    string        `env:"DATABASE_URL,notEmpty"`
	DBReadDSN      string        `env:"DB_READ_DSN"`
	DBMaxIdle      int           `env:"DB_MAX_IDLE" envDefault:"10"`
	DBMaxOpen      int           `env:"DB_MAX_OPEN" envDefault:"25"`
	DBMaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" envDefault:"1h"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// Auth
	SecretKey              string        `env:"SECRET_KEY" envDefault:"changethis"`
	AccessTokenTTL         time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"192h"`
	FirstSuperuser         string        `env:"FIRST_SUPERUSER" envDefault:"admin@example.com"`
	FirstSuperuserPassword string        `env:"FIRST_SUPERUSER_PASSWORD" envDefault:"changethis"`
	FirstSuperuserRole     string        `env:"FIRST_SUPERUSER_ROLE" envDefault:"admin"`

	// Metrics backend the collector reads from
	PrometheusURL       string        `env:"PROMETHEUS_URL" envDefault:"http://localhost:9090"`
	PrometheusQuery     string        `env:"PROMETHEUS_QUERY" envDefault:"http_server_requests_seconds_count"`
	PrometheusURIPrefix string        `env:"PROMETHEUS_URI_PREFIX" envDefault:"/api"`
	PrometheusTimeout   time.Duration `env:"PROMETHEUS_TIMEOUT" envDefault:"30s"`

	// Report ingestion
	ReportDedupScope string `env:"REPORT_DEDUP_SCOPE" envDefault:"url"`

	// Scheduler
	SchedulerTimezone string        `env:"SCHEDULER_TIMEZONE" envDefault:"Asia/Shanghai"`
	SchedulerJobsFile string        `env:"SCHEDULER_JOBS_FILE"`
	CollectInterval   time.Duration `env:"COLLECT_INTERVAL" envDefault:"1h"`
	CollectOnStart    bool          `env:"COLLECT_ON_START" envDefault:"false"`
	CronJobTimeout    time.Duration `env:"CRON_JOB_TIMEOUT" envDefault:"10m"`

	SchedulerJobs []SchedulerJobEntry `env:"-"`

	// Run lock and cache
	RedisURL         string        `env:"REDIS_URL"`
	RunLockTTL       time.Duration `env:"RUN_LOCK_TTL" envDefault:"5m"`
	RunLockWait      time.Duration `env:"RUN_LOCK_WAIT" envDefault:"30s"`
	ProjectCacheSize int           `env:"PROJECT_CACHE_SIZE" envDefault:"1024"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"qualitystar"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"quality"`
	ServiceVersion   string `env:"SERVICE_VERSION" envDefault:"dev"`
	Environment      string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	EnvReloadedAt time.Time
}

// Load reads an optional .env file, parses environment variables into Config and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	jobs, err := LoadSchedulerJobs(cfg.SchedulerJobsFile, cfg.CollectInterval)
	if err != nil {
		return nil, fmt.Errorf("load scheduler jobs: %w", err)
	}
	cfg.SchedulerJobs = jobs

	cfg.EnvReloadedAt = time.Now()
	globalConfig = cfg

	return cfg, nil
}

func (c *Config) normalize() error {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	switch c.DatabaseDriver {
	case DatabaseDriverPostgres, DatabaseDriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}

	c.ReportDedupScope = strings.ToLower(strings.TrimSpace(c.ReportDedupScope))
	switch c.ReportDedupScope {
	case DedupScopeURL, DedupScopeGroup:
	default:
		return fmt.Errorf("unsupported REPORT_DEDUP_SCOPE %q", c.ReportDedupScope)
	}

	if _, err := url.ParseRequestURI(c.PrometheusURL); err != nil {
		return fmt.Errorf("invalid PROMETHEUS_URL: %w", err)
	}
	c.PrometheusURL = strings.TrimRight(c.PrometheusURL, "/")

	if c.CollectInterval <= 0 {
		return errors.New("COLLECT_INTERVAL must be positive")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	if c.SecretKey == "changethis" && c.Environment != "local" {
		return errors.New(`SECRET_KEY still has the default value "changethis"`)
	}

	c.APIPrefix = "/" + strings.Trim(c.APIPrefix, "/")
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	return nil
}

// Location resolves the scheduler timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SchedulerTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetGlobal returns the config loaded last by Load.
func GetGlobal() *Config {
	return globalConfig
}
