package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"sgfview/internal/domain"
)

// Config represents the application configuration
type Config struct {
	// Base is the collection root: an http(s) URL or a local directory
	Base      string                `toml:"base"`
	RecordExt string                `toml:"record_ext"`
	Modes     domain.ModeDirs       `toml:"modes"`
	Display   domain.DisplayOptions `toml:"display"`
	Crawl     CrawlSettings         `toml:"crawl"`
	Serve     ServeSettings         `toml:"serve"`
	Log       LogSettings           `toml:"log"`
}

// CrawlSettings configures the record crawler
type CrawlSettings struct {
	ListURL   string   `toml:"list_url"`
	RecordURL string   `toml:"record_url"` // %s is replaced by the record id
	UserAgent string   `toml:"user_agent"`
	Delay     Duration `toml:"delay"`
	Retries   int      `toml:"retries"`
	Timeout   Duration `toml:"timeout"`
	SaveRoot  string   `toml:"save_root"`
	DBPath    string   `toml:"db_path"`
}

// ServeSettings configures the collection file server
type ServeSettings struct {
	Addr string `toml:"addr"`
	Root string `toml:"root"`
}

// LogSettings configures the log sink
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("2s")
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location,
// $XDG_CONFIG_HOME/sgfview/config.toml
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "sgfview", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys the file
// leaves out keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values the browser cannot work without
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Base) == "" {
		errs = append(errs, errors.New("base must not be empty"))
	}
	if c.Modes.Primary == "" || c.Modes.Alternate == "" {
		errs = append(errs, errors.New("both mode directories must be named"))
	} else if c.Modes.Primary == c.Modes.Alternate {
		errs = append(errs, fmt.Errorf("mode directories must differ, both are %q", c.Modes.Primary))
	}
	if strings.ContainsRune(c.Modes.Primary, '/') || strings.ContainsRune(c.Modes.Alternate, '/') {
		errs = append(errs, errors.New("mode directories must be single path segments"))
	}
	if !strings.HasPrefix(c.RecordExt, ".") || len(c.RecordExt) < 2 {
		errs = append(errs, fmt.Errorf("record_ext %q must start with a dot", c.RecordExt))
	}
	if c.Crawl.Retries < 1 {
		errs = append(errs, errors.New("crawl.retries must be at least 1"))
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Base:      "sgf",
		RecordExt: ".sgf",
		Modes:     domain.ModeDirs{Primary: "pure", Alternate: "ai"},
		Display:   domain.DefaultDisplayOptions(),
		Crawl: CrawlSettings{
			ListURL:   "https://www.foxwq.com/qipu.html",
			RecordURL: "https://www.foxwq.com/qipu/newlist/id/%s.html",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			Delay:     Duration{2 * time.Second},
			Retries:   3,
			Timeout:   Duration{15 * time.Second},
			SaveRoot:  "sgf",
			DBPath:    "ids.db",
		},
		Serve: ServeSettings{
			Addr: "127.0.0.1:8080",
			Root: "sgf",
		},
		Log: LogSettings{
			File:  "sgfview.log",
			Level: "info",
		},
	}
}
