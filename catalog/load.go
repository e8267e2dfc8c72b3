package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Environment variables consulted by OptionsFromEnv.
const (
	EnvSearchPath = "PATH"
	EnvHome       = "HOME"
)

// Options are the inputs of Load.
type Options struct {
	SearchPath SearchPath
	// CachePath is the cache file location. An empty path disables the cache.
	CachePath string
	// Stdin is checked for piped names before anything else. nil skips the check.
	Stdin       *os.File
	AtomicCache bool
	Logger      *log.Logger
}

// OptionsFromEnv derives the search path from $PATH and the cache location
// from $HOME. Both variables must be set.
func OptionsFromEnv(lookup func(string) (string, bool)) (Options, error) {
	path, ok := lookup(EnvSearchPath)
	if !ok {
		return Options{}, fmt.Errorf("%w: $%s", ErrMissingEnv, EnvSearchPath)
	}
	home, ok := lookup(EnvHome)
	if !ok || home == "" {
		return Options{}, fmt.Errorf("%w: $%s", ErrMissingEnv, EnvHome)
	}
	return Options{
		SearchPath: SearchPath(path),
		CachePath:  DefaultCachePath(home),
	}, nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Cache returns the cache file the options point at.
func (o Options) Cache() Cache {
	return Cache{Path: o.CachePath, Atomic: o.AtomicCache}
}

// Load produces the catalog for one runmenu invocation. Names piped on
// Stdin win if there is at least one; otherwise a valid cache is used, and
// failing that the search path is scanned, sorted, deduplicated and written
// back to the cache.
//
// Only ErrScanFailed and ErrStreamFailed are returned; cache problems just
// force a rescan.
func Load(opts Options) (*Catalog, error) {
	logger := opts.logger()

	if IsPipe(opts.Stdin) {
		items, err := ReadStream(opts.Stdin)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			logger.Debug("catalog read from stdin", "items", len(items))
			return &Catalog{Items: items, Source: SourceStream}, nil
		}
		logger.Debug("piped input was empty, using search path")
	}

	if opts.CachePath != "" {
		cat, err := opts.Cache().Validate(opts.SearchPath)
		if err == nil {
			logger.Debug("catalog read from cache", "items", cat.Len(), "cache", opts.CachePath)
			return cat, nil
		}
		logger.Debug("cache miss", "reason", err)
	}

	return Rebuild(opts)
}

// Rebuild scans the search path regardless of the cache state and refreshes
// the cache with the result. A failed cache write is logged and ignored.
func Rebuild(opts Options) (*Catalog, error) {
	logger := opts.logger()

	items, err := Scan(opts.SearchPath)
	if err != nil {
		return nil, err
	}
	scanned := len(items)
	Sort(items)
	items = Dedup(items)
	logger.Debug("search path scanned", "found", scanned, "unique", len(items))

	if opts.CachePath != "" {
		if err := opts.Cache().Write(opts.SearchPath, items); err != nil {
			logger.Debug("cache not written", "cache", opts.CachePath, "err", err)
		}
	}
	return &Catalog{Items: items, Source: SourceScan}, nil
}

// Pending is a catalog being loaded on a worker goroutine.
type Pending struct {
	g   errgroup.Group
	cat *Catalog
}

// Start runs Load on its own goroutine so the caller can initialise
// everything else in the meantime. The catalog must be collected with Wait,
// even if the caller no longer needs it.
func Start(opts Options) *Pending {
	p := &Pending{}
	p.g.Go(func() error {
		cat, err := Load(opts)
		p.cat = cat
		return err
	})
	return p
}

// Wait blocks until the load finishes and hands over the catalog.
func (p *Pending) Wait() (*Catalog, error) {
	if err := p.g.Wait(); err != nil {
		return nil, err
	}
	return p.cat, nil
}
