// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// eBay endpoint defaults per environment.
const (
	productionTokenURL  = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	productionBrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	sandboxTokenURL     = "https://api.sandbox.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	sandboxBrowseURL    = "https://api.sandbox.ebay.com/buy/browse/v1/item_summary/search"
	analyticsURL        = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Ebay     EbayConfig     `yaml:"ebay"`
	Comps    CompsConfig    `yaml:"comps"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// APIKey enables the x-api-key gate on /comps routes when non-empty.
	APIKey string `yaml:"api_key"`
}

// EbayConfig defines eBay API settings.
type EbayConfig struct {
	AppID        string          `yaml:"app_id"`
	CertID       string          `yaml:"cert_id"`
	Environment  string          `yaml:"environment"` // production, sandbox
	TokenURL     string          `yaml:"token_url"`
	BrowseURL    string          `yaml:"browse_url"`
	AnalyticsURL string          `yaml:"analytics_url"`
	Marketplace  string          `yaml:"marketplace"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// CompsConfig defines the comp pipeline knobs. The zero value of each field
// picks the documented default; these are named here rather than buried in
// the pipeline so operators can tune them.
type CompsConfig struct {
	// BroadenThreshold is the comp count below which a bucket search is
	// retried once with a loosened identity.
	BroadenThreshold int `yaml:"broaden_threshold"`
	// TrimPct is the fraction trimmed from each end of the price range.
	TrimPct float64 `yaml:"trim_pct"`
	// SampleCompLimit caps how many comps are returned per bucket.
	SampleCompLimit int `yaml:"sample_comp_limit"`
	// MaxConcurrentBuckets bounds the multi-bucket fan-out.
	MaxConcurrentBuckets int `yaml:"max_concurrent_buckets"`
	// SearchTimeout is the per-search deadline against the Browse API.
	SearchTimeout time.Duration `yaml:"search_timeout"`
}

// ScheduleConfig defines the upkeep intervals.
type ScheduleConfig struct {
	TokenKeepwarmInterval time.Duration `yaml:"token_keepwarm_interval"`
	QuotaLogInterval      time.Duration `yaml:"quota_log_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyEbayDefaults(&cfg.Ebay)
	applyCompsDefaults(&cfg.Comps)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.Environment == "" {
		e.Environment = "production"
	}
	if e.TokenURL == "" {
		if e.Environment == "sandbox" {
			e.TokenURL = sandboxTokenURL
		} else {
			e.TokenURL = productionTokenURL
		}
	}
	if e.BrowseURL == "" {
		if e.Environment == "sandbox" {
			e.BrowseURL = sandboxBrowseURL
		} else {
			e.BrowseURL = productionBrowseURL
		}
	}
	if e.AnalyticsURL == "" {
		e.AnalyticsURL = analyticsURL
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyCompsDefaults(c *CompsConfig) {
	if c.BroadenThreshold == 0 {
		c.BroadenThreshold = 6
	}
	if c.TrimPct == 0 {
		c.TrimPct = 0.15
	}
	if c.SampleCompLimit == 0 {
		c.SampleCompLimit = 12
	}
	if c.MaxConcurrentBuckets == 0 {
		c.MaxConcurrentBuckets = 4
	}
	if c.SearchTimeout == 0 {
		c.SearchTimeout = 15 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.TokenKeepwarmInterval == 0 {
		s.TokenKeepwarmInterval = 30 * time.Minute
	}
	if s.QuotaLogInterval == 0 {
		s.QuotaLogInterval = 6 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	// Missing credentials are the most common misconfiguration; call them
	// out individually at startup instead of failing on the first request.
	if cfg.Ebay.AppID == "" {
		errs = append(errs, fmt.Errorf("ebay.app_id is required"))
	}
	if cfg.Ebay.CertID == "" {
		errs = append(errs, fmt.Errorf("ebay.cert_id is required"))
	}

	switch cfg.Ebay.Environment {
	case "production", "sandbox":
	default:
		errs = append(errs, fmt.Errorf(
			"ebay.environment must be production or sandbox (got %q)",
			cfg.Ebay.Environment,
		))
	}

	if cfg.Comps.TrimPct < 0 || cfg.Comps.TrimPct >= 0.5 {
		errs = append(errs, fmt.Errorf(
			"comps.trim_pct must be in [0, 0.5) (got %v)", cfg.Comps.TrimPct,
		))
	}

	return errors.Join(errs...)
}
