// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the portal's date format, used for quarter starts and the
// search form bounds.
const DateLayout = "02/01/2006"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Portal
	PortalURL string `json:"portal_url,omitempty" validate:"omitempty,url"` // Registry portal landing page
	PageSize  int    `json:"page_size,omitempty" validate:"omitempty,min=1"`
	Headless  bool   `json:"headless,omitempty"` // Run the browser headless

	// Fiscal window
	QuarterStart string `json:"quarter_start,omitempty"` // dd/mm/yyyy start of the current fiscal quarter
	QuarterLabel string `json:"quarter_label,omitempty"` // e.g. FY25Q3

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	CacheDir    string `json:"cache_dir,omitempty"`    // Snapshot and scratch cache directory

	// Pacing
	DelayBaseMs int     `json:"delay_base_ms,omitempty" validate:"omitempty,min=0"` // Base per-keystroke delay
	MaxRetries  int     `json:"max_retries,omitempty" validate:"omitempty,min=1"`   // Overlay/spinner retry bound
	JitterSpan  float64 `json:"jitter_span,omitempty" validate:"omitempty,gt=0,lte=1"`

	// Notification (optional; mail is skipped when SMTPHost is empty)
	SMTPHost string   `json:"smtp_host,omitempty"`
	SMTPPort int      `json:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	SMTPUser string   `json:"smtp_user,omitempty"`
	SMTPPass string   `json:"smtp_pass,omitempty"`
	MailFrom string   `json:"mail_from,omitempty" validate:"omitempty,email"`
	MailTo   []string `json:"mail_to,omitempty" validate:"omitempty,dive,email"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from environment variables. Flags override the
// config file, the config file overrides the environment.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.PortalURL == "" {
		c.PortalURL = os.Getenv("PORTAL_URL")
	}
	if c.CacheDir == "" {
		c.CacheDir = os.Getenv("HARVESTER_CACHE_DIR")
	}
	if c.SMTPHost == "" {
		c.SMTPHost = os.Getenv("SMTP_HOST")
	}
	if c.SMTPUser == "" {
		c.SMTPUser = os.Getenv("SMTP_USER")
	}
	if c.SMTPPass == "" {
		c.SMTPPass = os.Getenv("SMTP_PASS")
	}
}

// Validate checks that the configuration has valid values.
// Required-field checks happen after flag merging in the CLI layer.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.QuarterStart != "" {
		if _, err := time.Parse(DateLayout, c.QuarterStart); err != nil {
			return fmt.Errorf("config error: 'quarter_start' must be dd/mm/yyyy: %w", err)
		}
	}

	return nil
}

// QuarterStartDate parses the configured quarter start, defaulting to the
// first day of the current calendar quarter when unset.
func (c *Config) QuarterStartDate() (time.Time, error) {
	if c.QuarterStart == "" {
		now := time.Now().UTC()
		qm := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return time.Date(now.Year(), qm, 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(DateLayout, c.QuarterStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid quarter_start: %w", err)
	}
	return t, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.PortalURL == "" {
		result.PortalURL = defaults.PortalURL
	}
	if result.QuarterStart == "" {
		result.QuarterStart = defaults.QuarterStart
	}
	if result.QuarterLabel == "" {
		result.QuarterLabel = defaults.QuarterLabel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CacheDir == "" {
		result.CacheDir = defaults.CacheDir
	}
	if result.SMTPHost == "" {
		result.SMTPHost = defaults.SMTPHost
	}
	if result.MailFrom == "" {
		result.MailFrom = defaults.MailFrom
	}
	if len(result.MailTo) == 0 {
		result.MailTo = defaults.MailTo
	}

	if result.PageSize == 0 {
		result.PageSize = defaults.PageSize
	}
	if result.PageSize == 0 {
		result.PageSize = 20
	}
	if result.DelayBaseMs == 0 {
		result.DelayBaseMs = defaults.DelayBaseMs
	}
	if result.DelayBaseMs == 0 {
		result.DelayBaseMs = 120
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = 5
	}
	if result.JitterSpan == 0 {
		if defaults.JitterSpan > 0 {
			result.JitterSpan = defaults.JitterSpan
		} else {
			result.JitterSpan = 0.5
		}
	}
	if result.SMTPPort == 0 {
		result.SMTPPort = defaults.SMTPPort
	}
	if result.SMTPPort == 0 && result.SMTPHost != "" {
		result.SMTPPort = 587
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
