package host

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config configures the dev host. It is loadable from a TOML file:
//
//	addr = ":8080"
//	dev = true
//	debounce_ms = 10
//	cache_ttl_seconds = 30
//	watch_dirs = ["./assets"]
type Config struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// Dev enables development mode: no page cache, livereload
	// endpoint and script enabled.
	Dev bool `toml:"dev"`

	// DebounceMS is the form-change debounce window for components
	// the host constructs, in milliseconds.
	DebounceMS int `toml:"debounce_ms"`

	// CacheTTLSeconds is how long rendered pages are cached outside
	// dev mode.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`

	// WatchDirs are directories the dev watcher observes.
	WatchDirs []string `toml:"watch_dirs"`
}

// DefaultConfig returns the host defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		DebounceMS:      10,
		CacheTTLSeconds: 30,
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("host: load config %s: %w", path, err)
	}
	return cfg, nil
}

// Debounce returns the configured debounce window as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// CacheTTL returns the configured cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
