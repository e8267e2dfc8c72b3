package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates and returns the cache subcommand and its children.
func NewCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect, rebuild or clear the catalog cache",
		Long: `Inspect, rebuild or clear the catalog cache.

The cache records the search path it was built for, the number of entries
and the sorted, deduplicated names. It is used only while no directory on
the search path has a modification time newer than the cache file.`,
	}

	cmd.AddCommand(newCachePathCmd(app))
	cmd.AddCommand(newCacheCheckCmd(app))
	cmd.AddCommand(newCacheRebuildCmd(app))
	cmd.AddCommand(newCacheClearCmd(app))

	return cmd
}

func newCachePathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.loaderOptions(false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.CachePath)
			return nil
		},
	}
}

func newCacheCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the cache is usable",
		Long: `Validate the cache against the current search path without rebuilding it.

Exits non-zero and prints the reason when the cache is absent, stale, built
for a different search path or corrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.loaderOptions(false)
			if err != nil {
				return err
			}
			cat, err := opts.Cache().Validate(opts.SearchPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cache is valid: %d entries (%s)\n", cat.Len(), opts.CachePath)
			return nil
		},
	}
}

func newCacheRebuildCmd(app *App) *cobra.Command {
	var atomic bool

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rescan the search path and rewrite the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.loaderOptions(false)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("atomic") {
				opts.AtomicCache = atomic
			}

			items, err := catalog.Scan(opts.SearchPath)
			if err != nil {
				return err
			}
			catalog.Sort(items)
			items = catalog.Dedup(items)

			if err := opts.Cache().Write(opts.SearchPath, items); err != nil {
				app.Logger.Error("writing cache", "cache", opts.CachePath, "err", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached %d entries in %s\n", len(items), opts.CachePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&atomic, "atomic", false, "Write through a temporary file and rename (default: atomic_cache)")

	return cmd
}

func newCacheClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.loaderOptions(false)
			if err != nil {
				return err
			}
			if err := opts.Cache().Remove(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", opts.CachePath)
			return nil
		},
	}
}

// cacheStatus summarises a validation result for humans.
func cacheStatus(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, catalog.ErrCacheAbsent):
		return "absent"
	case errors.Is(err, catalog.ErrCacheStale):
		return "stale"
	case errors.Is(err, catalog.ErrCachePathMismatch):
		return "built for another search path"
	case errors.Is(err, catalog.ErrCacheCorrupt):
		return "corrupt"
	default:
		return err.Error()
	}
}
