// Package config loads marquee settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML can express it as "10s".
type Duration time.Duration

// UnmarshalYAML parses either a duration string ("10s") or a bare number of
// seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}

	var secs float64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds everything tunable about the browser.
type Config struct {
	// BaseURL is the content API root. Empty means no remote API; a local
	// catalog file must be supplied instead.
	BaseURL string `yaml:"base_url"`

	// WrapAround enables wrap-around focus navigation.
	WrapAround bool `yaml:"wrap_around"`

	// EagerRows is how many leading rows load without being scrolled into
	// view.
	EagerRows int `yaml:"eager_rows"`

	// PreloadMargin is how many rows beyond the visible window count as
	// visible for lazy loading.
	PreloadMargin int `yaml:"preload_margin"`

	// TileWidth and TileGap control horizontal tile layout, in cells.
	TileWidth int `yaml:"tile_width"`
	TileGap   int `yaml:"tile_gap"`

	// FetchTimeout bounds every network request.
	FetchTimeout Duration `yaml:"fetch_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		WrapAround:    false,
		EagerRows:     3,
		PreloadMargin: 1,
		TileWidth:     18,
		TileGap:       2,
		FetchTimeout:  Duration(10 * time.Second),
	}
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error; malformed YAML is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize pins nonsensical values back to their defaults.
func (c *Config) normalize() {
	def := Default()
	if c.EagerRows <= 0 {
		c.EagerRows = def.EagerRows
	}
	if c.PreloadMargin < 0 {
		c.PreloadMargin = def.PreloadMargin
	}
	if c.TileWidth < 8 {
		c.TileWidth = def.TileWidth
	}
	if c.TileGap < 0 {
		c.TileGap = def.TileGap
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
}
