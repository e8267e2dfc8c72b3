package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/dendrascience/runmenu/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates and returns the watch subcommand.
func NewWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the cache fresh while search path directories change",
		Long: `Rebuild the cache immediately, then again whenever a search path
directory changes, after a quiet period of watch.debounce.

Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.loaderOptions(false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchSearchPath(ctx, app, opts, func(cat *catalog.Catalog) {
				fmt.Fprintf(cmd.OutOrStdout(), "cached %d entries\n", cat.Len())
			})
		},
	}
}

// watchSearchPath rebuilds the catalog once and then on every change,
// handing each new catalog to updated.
func watchSearchPath(ctx context.Context, app *App, opts catalog.Options, updated func(*catalog.Catalog)) error {
	cat, err := catalog.Rebuild(opts)
	if err != nil {
		return err
	}
	updated(cat)

	w, err := watch.New(watch.Config{
		Dirs:     opts.SearchPath.Dirs(),
		Debounce: app.Config.Watch.Debounce,
		Logger:   app.Logger,
		OnChange: func(ctx context.Context, changed []string) error {
			app.Logger.Info("rebuilding catalog", "changed", changed)
			cat, err := catalog.Rebuild(opts)
			if err != nil {
				return err
			}
			updated(cat)
			return nil
		},
	})
	if err != nil {
		return err
	}
	app.Logger.Info("watching search path", "dirs", len(w.Watched()))
	return w.Run(ctx)
}
