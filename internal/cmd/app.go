package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/runmenu/catalog"
	"github.com/dendrascience/runmenu/internal/config"
	"github.com/dendrascience/runmenu/internal/logging"
	"github.com/spf13/cobra"
)

// App carries what every subcommand needs once flags are parsed.
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *log.Logger

	// Stdin is offered to the loader as a source of piped names.
	Stdin *os.File
	// LookupEnv and Environ are swapped out by tests.
	LookupEnv func(string) (string, bool)
	Environ   func() []string
	// ConfigDir replaces the platform config directory when set.
	ConfigDir string

	configFile string
	logLevel   string
	searchPath string
	cacheFile  string
}

// NewApp returns an App bound to the process environment.
func NewApp() *App {
	return &App{
		Stdin:     os.Stdin,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
	}
}

func (a *App) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a config file (default: $XDG_CONFIG_HOME/runmenu/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.searchPath, "path", "", "Search path to use instead of $PATH")
	flags.StringVar(&a.cacheFile, "cache", "", "Cache file to use instead of ~/.cache/runmenu/cache")
}

// setup resolves configuration and the logger. Flags win over the config
// file, which wins over defaults.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, path, err := config.Load(config.LoadOptions{
		ConfigFilePath: a.configFile,
		ConfigDirPath:  a.ConfigDir,
	})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("path") {
		cfg.SearchPath = a.searchPath
	}
	if flags.Changed("cache") {
		cfg.CacheFile = a.cacheFile
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.ConfigPath = path
	a.Logger = logger
	if path != "" {
		logger.Debug("config loaded", "file", path)
	}
	return nil
}

// loaderOptions builds catalog options. withStdin offers piped input to the
// loader; commands that manage the cache never read it.
func (a *App) loaderOptions(withStdin bool) (catalog.Options, error) {
	opts, err := a.Config.LoaderOptions(a.LookupEnv)
	if err != nil {
		a.Logger.Error("cannot determine search path", "err", err)
		return catalog.Options{}, err
	}
	opts.Logger = a.Logger
	if withStdin {
		opts.Stdin = a.Stdin
	}
	return opts, nil
}

func (a *App) loadCatalog(withStdin bool) (*catalog.Catalog, catalog.Options, error) {
	opts, err := a.loaderOptions(withStdin)
	if err != nil {
		return nil, opts, err
	}
	cat, err := catalog.Load(opts)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, opts, nil
}

// getenv adapts LookupEnv for shell expansion.
func (a *App) getenv(name string) string {
	v, _ := a.LookupEnv(name)
	return v
}
