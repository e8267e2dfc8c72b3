package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dendrascience/runmenu/catalog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, expected warn", cfg.LogLevel)
	}
	if cfg.Menu.Limit != 10 {
		t.Errorf("Menu.Limit = %d, expected 10", cfg.Menu.Limit)
	}
	if !cfg.Menu.Color {
		t.Error("Menu.Color = false, expected true")
	}
	if cfg.AtomicCache {
		t.Error("AtomicCache = true, expected false")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, expected 500ms", cfg.Watch.Debounce)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if _, err := os.UserHomeDir(); err != nil {
		t.Skip("no home directory")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if !strings.HasSuffix(dir, AppName) {
		t.Errorf("ConfigDir() = %q, expected suffix %q", dir, AppName)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, path, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, expected none", path)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults %+v", *cfg, *DefaultConfig())
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	contents := `log_level = "debug"
search_path = "/opt/bin:/bin"
atomic_cache = true

[menu]
limit = 3
color = false

[watch]
debounce = "2s"
`
	file := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(file, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, path, err := Load(LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != file {
		t.Errorf("resolved path = %q, expected %q", path, file)
	}
	if cfg.LogLevel != "debug" || cfg.SearchPath != "/opt/bin:/bin" || !cfg.AtomicCache {
		t.Errorf("top-level keys not applied: %+v", *cfg)
	}
	if cfg.Menu.Limit != 3 || cfg.Menu.Color {
		t.Errorf("Menu = %+v, expected {Limit:3 Color:false}", cfg.Menu)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, expected 2s", cfg.Watch.Debounce)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RUNMENU_MENU_LIMIT", "25")
	t.Setenv("RUNMENU_CACHE_FILE", "/tmp/runmenu-cache")

	cfg, _, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Menu.Limit != 25 {
		t.Errorf("Menu.Limit = %d, expected 25", cfg.Menu.Limit)
	}
	if cfg.CacheFile != "/tmp/runmenu-cache" {
		t.Errorf("CacheFile = %q, expected /tmp/runmenu-cache", cfg.CacheFile)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		_, _, err := Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml")})
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Load error = %v, expected ErrConfigNotFound", err)
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(file, []byte("log_level = = \n"), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if _, _, err := Load(LoadOptions{ConfigFilePath: file}); err == nil {
			t.Error("Load succeeded on malformed file, expected error")
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "neg.toml")
		if err := os.WriteFile(file, []byte("[menu]\nlimit = -1\n"), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if _, _, err := Load(LoadOptions{ConfigFilePath: file}); err == nil {
			t.Error("Load accepted a negative limit, expected error")
		}
	})
}

func TestLoaderOptions(t *testing.T) {
	env := map[string]string{"PATH": "/bin:/usr/bin", "HOME": "/home/u"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	noEnv := func(string) (string, bool) { return "", false }

	tests := []struct {
		name      string
		cfg       Config
		lookup    func(string) (string, bool)
		wantPath  string
		wantCache string
		wantErr   bool
	}{
		{name: "environment", lookup: lookup, wantPath: "/bin:/usr/bin", wantCache: "/home/u/.cache/runmenu/cache"},
		{name: "overrides", cfg: Config{SearchPath: "/opt/bin", CacheFile: "/tmp/c"}, lookup: noEnv, wantPath: "/opt/bin", wantCache: "/tmp/c"},
		{name: "path override still needs home", cfg: Config{SearchPath: "/opt/bin"}, lookup: noEnv, wantErr: true},
		{name: "no environment", lookup: noEnv, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.LoaderOptions(tt.lookup)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoaderOptions error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, catalog.ErrMissingEnv) {
					t.Errorf("LoaderOptions error = %v, expected ErrMissingEnv", err)
				}
				return
			}
			if string(opts.SearchPath) != tt.wantPath {
				t.Errorf("SearchPath = %q, expected %q", opts.SearchPath, tt.wantPath)
			}
			if opts.CachePath != tt.wantCache {
				t.Errorf("CachePath = %q, expected %q", opts.CachePath, tt.wantCache)
			}
		})
	}
}

func TestWriteTOML(t *testing.T) {
	var b strings.Builder
	if err := DefaultConfig().WriteTOML(&b); err != nil {
		t.Fatalf("WriteTOML failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{"log_level = 'warn'", "[menu]", "limit = 10", "[watch]", "debounce = '500ms'"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteTOML output missing %q:\n%s", want, out)
		}
	}
}
