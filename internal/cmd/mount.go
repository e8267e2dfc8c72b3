package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/runmenu/binfs"
	"github.com/dendrascience/runmenu/version"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var ErrMountOverlap = errors.New("mountpoint overlaps a search path directory")

// NewMountCmd creates and returns the mount subcommand for the runmenu CLI.
// It serves the catalog as a flat directory of symlinks.
func NewMountCmd(app *App) *cobra.Command {
	var (
		live      bool
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "mount MOUNTPOINT",
		Short: "Mount the catalog as a flat bin directory",
		Long: `Mount a read-only FUSE filesystem at MOUNTPOINT holding one symlink per
catalog entry. Each symlink points at the program that name runs, resolved
in search path order.

With --watch the view follows changes to the search path.

MOUNTPOINT must not be inside, or contain, a search path directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.ErrOrStderr(), "runmenu %s starting...\n", version.GetFullVersion())
			return runMount(cmd.Context(), app, args[0], live, cacheSize)
		},
	}

	cmd.Flags().BoolVarP(&live, "watch", "w", false, "Rebuild the view when the search path changes")
	cmd.Flags().IntVar(&cacheSize, "cache-size", binfs.DefaultCacheSize, "Number of resolved symlink targets to keep")

	return cmd
}

func runMount(ctx context.Context, app *App, mountpoint string, live bool, cacheSize int) error {
	cat, opts, err := app.loadCatalog(false)
	if err != nil {
		return err
	}
	for _, dir := range opts.SearchPath.Dirs() {
		if pathsOverlap(mountpoint, dir) {
			return fmt.Errorf("%w: %s and %s", ErrMountOverlap, mountpoint, dir)
		}
	}

	filesystem, err := binfs.New(cat, opts.SearchPath, binfs.Options{CacheSize: cacheSize, Logger: app.Logger})
	if err != nil {
		return err
	}

	c, err := binfs.Mount(mountpoint)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		app.Logger.Info("shutting down", "mountpoint", mountpoint)
		if err := fuse.Unmount(mountpoint); err != nil {
			app.Logger.Debug("unmount", "mountpoint", mountpoint, "err", err)
		}
		return nil
	})
	if live {
		g.Go(func() error {
			return watchSearchPath(ctx, app, opts, filesystem.Update)
		})
	}
	g.Go(func() error {
		app.Logger.Info("mounted", "version", version.GetVersion(), "mountpoint", mountpoint, "entries", cat.Len())
		err := fs.Serve(c, filesystem)
		stop()
		return err
	})

	return g.Wait()
}

// pathsOverlap reports whether one path is equal to or nested inside the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		return filepath.Clean(path1) == filepath.Clean(path2)
	}
	if abs1 == abs2 {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(abs1, abs2+sep) || strings.HasPrefix(abs2, abs1+sep)
}
