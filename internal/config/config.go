// Package config resolves runmenu's settings from defaults, an optional TOML
// file under the user's config directory and RUNMENU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory and the environment prefix.
	AppName = "runmenu"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix prefixes every environment override, e.g. RUNMENU_MENU_LIMIT.
	EnvPrefix = "RUNMENU"
)

// ErrConfigNotFound is returned when an explicitly requested file is missing.
var ErrConfigNotFound = errors.New("config file not found")

type (
	// Config is the effective configuration.
	Config struct {
		LogLevel    string      `mapstructure:"log_level"`
		SearchPath  string      `mapstructure:"search_path"`
		CacheFile   string      `mapstructure:"cache_file"`
		AtomicCache bool        `mapstructure:"atomic_cache"`
		Menu        MenuConfig  `mapstructure:"menu"`
		Watch       WatchConfig `mapstructure:"watch"`
	}

	// MenuConfig controls how matches are presented.
	MenuConfig struct {
		Limit int  `mapstructure:"limit"`
		Color bool `mapstructure:"color"`
	}

	// WatchConfig controls the directory watcher.
	WatchConfig struct {
		Debounce time.Duration `mapstructure:"debounce"`
	}

	// LoadOptions selects where configuration is read from.
	LoadOptions struct {
		// ConfigFilePath forces a specific file. It must exist.
		ConfigFilePath string
		// ConfigDirPath replaces the platform config directory.
		ConfigDirPath string
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Menu: MenuConfig{
			Limit: 10,
			Color: true,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// ConfigDir returns $XDG_CONFIG_HOME/runmenu, falling back to
// ~/.config/runmenu. macOS uses ~/Library/Application Support/runmenu.
//
//nolint:revive
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration and reports which file, if any, was read.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.ConfigFilePath
	if path != "" {
		if !fileExists(path) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			d, err := ConfigDir()
			if err != nil {
				return nil, "", err
			}
			dir = d
		}
		candidate := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(candidate) {
			path = candidate
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Menu.Limit < 0 {
		return nil, "", fmt.Errorf("menu.limit must not be negative, got %d", cfg.Menu.Limit)
	}
	return &cfg, path, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("search_path", d.SearchPath)
	v.SetDefault("cache_file", d.CacheFile)
	v.SetDefault("atomic_cache", d.AtomicCache)
	v.SetDefault("menu.limit", d.Menu.Limit)
	v.SetDefault("menu.color", d.Menu.Color)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// LoaderOptions builds catalog loader options. search_path and cache_file
// take precedence over PATH and HOME; an environment variable is only
// required when its override is unset.
func (c *Config) LoaderOptions(lookup func(string) (string, bool)) (catalog.Options, error) {
	sp := c.SearchPath
	if sp == "" {
		v, ok := lookup(catalog.EnvSearchPath)
		if !ok {
			return catalog.Options{}, fmt.Errorf("%w: $%s", catalog.ErrMissingEnv, catalog.EnvSearchPath)
		}
		sp = v
	}

	cachePath := c.CacheFile
	if cachePath == "" {
		home, ok := lookup(catalog.EnvHome)
		if !ok || home == "" {
			return catalog.Options{}, fmt.Errorf("%w: $%s", catalog.ErrMissingEnv, catalog.EnvHome)
		}
		cachePath = catalog.DefaultCachePath(home)
	}

	return catalog.Options{
		SearchPath:  catalog.SearchPath(sp),
		CachePath:   cachePath,
		AtomicCache: c.AtomicCache,
	}, nil
}

// WriteTOML prints the configuration in the same shape the file accepts.
func (c *Config) WriteTOML(w io.Writer) error {
	doc := map[string]any{
		"log_level":    c.LogLevel,
		"search_path":  c.SearchPath,
		"cache_file":   c.CacheFile,
		"atomic_cache": c.AtomicCache,
		"menu": map[string]any{
			"limit": c.Menu.Limit,
			"color": c.Menu.Color,
		},
		"watch": map[string]any{
			"debounce": c.Watch.Debounce.String(),
		},
	}
	enc := toml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
