package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Source is a single configured RSS/Atom outlet.
type Source struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// Event describes the disaster event the site covers. Its keywords feed both
// the RSS relevance filter and the Claude retrieval prompt, so the two paths
// cannot drift apart.
type Event struct {
	Name     string   `yaml:"name"`
	Aliases  []string `yaml:"aliases"`
	Keywords []string `yaml:"keywords"`
}

// AIConfig configures the Claude fallback path.
type AIConfig struct {
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Outlets     []string `yaml:"outlets"`
	MaxArticles int      `yaml:"max_articles"`
}

// CacheConfig selects the snapshot store backend.
type CacheConfig struct {
	Backend   string `yaml:"backend"` // memory | sqlite | redis
	RedisAddr string `yaml:"redis_addr"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	RefreshInterval string       `yaml:"refresh_interval"`
	SourceTimeout   string       `yaml:"source_timeout"`
	MaxPerSource    int          `yaml:"max_per_source"`
	DefaultLimit    int          `yaml:"default_limit"`
	Event           Event        `yaml:"event"`
	Sources         []Source     `yaml:"sources"`
	AI              *AIConfig    `yaml:"ai,omitempty"`
	Cache           CacheConfig  `yaml:"cache"`
	Server          ServerConfig `yaml:"server"`
	Log             LogConfig    `yaml:"log"`
}

const apiKeyEnv = "RELIEFNEWS_AI_KEY"

// AIEnabled reports whether the Claude path has a usable credential.
// Absence disables the path silently; it is never an error.
func (c *Config) AIEnabled() bool {
	return c.AIKey() != ""
}

// AIKey returns the resolved API key (config value or env var).
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv(apiKeyEnv)
}

// RefreshTTL returns the cache TTL, defaulting to 20 minutes.
func (c *Config) RefreshTTL() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil || d <= 0 {
		return 20 * time.Minute
	}
	return d
}

// SourceTimeoutDuration returns the per-source fetch budget, default 5s.
func (c *Config) SourceTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.SourceTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// PerSourceLimit bounds how many candidate items one feed may contribute.
func (c *Config) PerSourceLimit() int {
	if c.MaxPerSource <= 0 {
		return 12
	}
	return c.MaxPerSource
}

// Limit resolves a caller-requested article count against the default.
func (c *Config) Limit(requested int) int {
	if requested > 0 {
		return requested
	}
	if c.DefaultLimit > 0 {
		return c.DefaultLimit
	}
	return 10
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Topic is the human-readable event description used in Claude prompts.
func (c *Config) Topic() string {
	if len(c.Event.Aliases) > 0 {
		return fmt.Sprintf("%s (also reported as: %v)", c.Event.Name, c.Event.Aliases)
	}
	return c.Event.Name
}

// MatchTerms returns every term the relevance filter should match:
// configured keywords plus the event name and aliases.
func (c *Config) MatchTerms() []string {
	terms := make([]string, 0, len(c.Event.Keywords)+len(c.Event.Aliases)+1)
	if c.Event.Name != "" {
		terms = append(terms, c.Event.Name)
	}
	terms = append(terms, c.Event.Aliases...)
	terms = append(terms, c.Event.Keywords...)
	return terms
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "reliefnews", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "reliefnews", "news.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads config from path, falling back to embedded defaults. On first
// run the defaults are written to the config path for editing.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
	}
	switch cfg.Cache.Backend {
	case "", "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("cache backend %q unknown (valid: memory, sqlite, redis)", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend redis requires redis_addr")
	}
	return nil
}
