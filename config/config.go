package config

import (
	"encoding/json"
	"os"
	"slices"
	"strings"
	"time"
)

// Dialect names accepted in the config file.
const (
	DialectPerType = "per-type" // callback set<Type>Settings, no type field
	DialectTyped   = "typed"    // callback settings + type field
)

// Preview names one polled image resource and the caption shown above it.
type Preview struct {
	Resource string `json:"resource"`
	Label    string `json:"label"`
}

// Config holds runtime configuration for the tuner.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Backend
	BaseURL          string `json:"base_url"`
	Dialect          string `json:"dialect"`
	RequestTimeoutMs int    `json:"request_timeout_ms"`

	// Settings taxonomy
	Types            []string `json:"types"`
	InitialType      string   `json:"initial_type"`
	FetchConcurrency int      `json:"fetch_concurrency"`

	// Preview polling
	Previews       []Preview `json:"previews"`
	PollIntervalMs int       `json:"poll_interval_ms"`

	MetricsAddr string `json:"metrics_addr"`
	OpenBrowser bool   `json:"open_browser"`
	DarkMode    bool   `json:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		BaseURL:          "http://localhost:8000",
		Dialect:          DialectPerType,
		RequestTimeoutMs: 2000,
		Types:            []string{"ball", "bg"},
		InitialType:      "ball",
		FetchConcurrency: 4,
		Previews: []Preview{
			{Resource: "cameraImage", Label: "Camera"},
			{Resource: "ballMask", Label: "Ball mask"},
			{Resource: "bgMask", Label: "Background mask"},
		},
		PollIntervalMs: 100,
		MetricsAddr:    "",
		OpenBrowser:    false,
		DarkMode:       false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Dialect != DialectPerType && c.Dialect != DialectTyped {
		c.Dialect = DialectPerType
	}
	if c.RequestTimeoutMs < 100 {
		c.RequestTimeoutMs = 100
	}
	types := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = def.Types
	}
	c.Types = types
	if !slices.Contains(c.Types, c.InitialType) {
		c.InitialType = c.Types[0]
	}
	if c.FetchConcurrency < 1 {
		c.FetchConcurrency = 1
	}
	previews := c.Previews[:0:0]
	for _, p := range c.Previews {
		p.Resource = strings.TrimSpace(p.Resource)
		if p.Resource == "" {
			continue
		}
		if p.Label == "" {
			p.Label = p.Resource
		}
		previews = append(previews, p)
	}
	c.Previews = previews
	if c.PollIntervalMs < 10 {
		c.PollIntervalMs = 10
	}
	return nil
}

// PollInterval returns the preview polling period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
