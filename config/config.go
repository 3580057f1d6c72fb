package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultStartURL is the ThriftBooks BookTok bestsellers browse page,
// sorted by bestselling, 50 results per page.
const DefaultStartURL = "https://www.thriftbooks.com/browse/#b.s=bestsellers-desc&b.p=1&b.pp=50&b.f.t%5B%5D=15999"

// Fetch modes
const (
	ModeBrowser = "browser"
	ModeStatic  = "static"
)

// Config holds all scraper settings. The wait and delay knobs are not
// part of the YAML surface; they keep their defaults unless overridden
// on the command line.
type Config struct {
	StartURL   string `yaml:"start_url"`
	Mode       string `yaml:"mode"`
	Headless   bool   `yaml:"headless"`
	MaxLinks   int    `yaml:"max_links"`
	MaxBooks   int    `yaml:"max_books"`
	OutputFile string `yaml:"output_file"`
	UserAgent  string `yaml:"user_agent"`

	NavTimeout       time.Duration `yaml:"-"`
	NextTimeout      time.Duration `yaml:"-"`
	DetailTimeout    time.Duration `yaml:"-"`
	StabilizeTimeout time.Duration `yaml:"-"`
	RequestTimeout   time.Duration `yaml:"-"`
	SettleDelay      time.Duration `yaml:"-"`
	PaginationDelay  time.Duration `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file or flags
// override it.
func DefaultConfig() *Config {
	return &Config{
		StartURL:         DefaultStartURL,
		Mode:             ModeBrowser,
		Headless:         true,
		MaxLinks:         0,
		MaxBooks:         0,
		OutputFile:       "booktok_bestsellers.csv",
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		NavTimeout:       20 * time.Second,
		NextTimeout:      10 * time.Second,
		DetailTimeout:    15 * time.Second,
		StabilizeTimeout: 10 * time.Second,
		RequestTimeout:   10 * time.Second,
		SettleDelay:      2 * time.Second,
		PaginationDelay:  3 * time.Second,
	}
}

// Load reads settings from a YAML file on top of the defaults. Keys
// missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start_url must not be empty")
	}
	if c.Mode != ModeBrowser && c.Mode != ModeStatic {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeBrowser, ModeStatic, c.Mode)
	}
	if c.MaxLinks < 0 {
		return fmt.Errorf("max_links must not be negative, got %d", c.MaxLinks)
	}
	if c.MaxBooks < 0 {
		return fmt.Errorf("max_books must not be negative, got %d", c.MaxBooks)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent must not be empty")
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("nav-timeout must be positive, got %s", c.NavTimeout)
	}
	if c.NextTimeout <= 0 {
		return fmt.Errorf("next-timeout must be positive, got %s", c.NextTimeout)
	}
	if c.DetailTimeout <= 0 {
		return fmt.Errorf("detail-timeout must be positive, got %s", c.DetailTimeout)
	}
	if c.StabilizeTimeout <= 0 {
		return fmt.Errorf("stabilize-timeout must be positive, got %s", c.StabilizeTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request-timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle-delay must not be negative, got %s", c.SettleDelay)
	}
	if c.PaginationDelay < 0 {
		return fmt.Errorf("pagination-delay must not be negative, got %s", c.PaginationDelay)
	}
	return nil
}
