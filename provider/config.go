package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds a provider call when no timeout is configured.
const DefaultTimeout = 2 * time.Minute

// Config holds configuration for creating a provider.
// Common fields apply to all backends; Options carries backend-specific
// settings.
type Config struct {
	// Provider is the registry name of the backend ("claude", "ollama").
	Provider string `json:"provider" toml:"provider" yaml:"provider"`

	// Model is the model to use. For Claude this is a family alias
	// (haiku, sonnet, opus) or a full model identifier.
	Model string `json:"model" toml:"model" yaml:"model"`

	// BinPath overrides the backend CLI binary path.
	BinPath string `json:"bin_path" toml:"bin_path" yaml:"bin_path"`

	// BaseURL is the endpoint for HTTP-backed providers.
	BaseURL string `json:"base_url" toml:"base_url" yaml:"base_url"`

	// Timeout bounds a single conversion call. Zero selects
	// DefaultTimeout. In config files this is a duration string
	// (e.g. "90s").
	Timeout time.Duration `json:"-" toml:"-" yaml:"-"`

	// Options holds backend-specific configuration.
	Options map[string]any `json:"options" toml:"options" yaml:"options"`
}

// GetStringOption returns a string option or the fallback.
func (c Config) GetStringOption(key, fallback string) string {
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return fallback
}

// GetBoolOption returns a boolean option or the fallback.
func (c Config) GetBoolOption(key string, fallback bool) bool {
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return fallback
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %v", c.Timeout)
	}
	return nil
}

// EffectiveTimeout returns the configured timeout or DefaultTimeout.
func (c Config) EffectiveTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// fileConfig is the on-disk shape of Config. Timeout is a duration
// string so config files stay readable.
type fileConfig struct {
	Config  `yaml:",inline"`
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Load reads a provider configuration from a TOML file, or from YAML
// when the path ends in .yaml or .yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg := fc.Config
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout %q: %w", fc.Timeout, err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Watch loads the configuration at path and reloads it whenever the
// file changes, sending each valid version on the returned channel.
// The first value is the current configuration. Invalid intermediate
// states (e.g. a half-written file) are logged and skipped. The channel
// closes when ctx is cancelled.
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	first, err := Load(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file, which drops
	// a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ch := make(chan Config, 1)
	ch <- first

	go func() {
		defer close(ch)
		defer watcher.Close()

		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					slog.Warn("config reload failed", "path", path, "error", err)
					continue
				}
				select {
				case ch <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "path", path, "error", err)
			}
		}
	}()

	return ch, nil
}
