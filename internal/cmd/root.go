package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/dendrascience/runmenu/internal/menu"
	"github.com/dendrascience/runmenu/version"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var ErrNoMatch = errors.New("no program matches")

// NewRootCmd creates and returns the root cobra command for the runmenu CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	return newRootCmd(NewApp())
}

func newRootCmd(app *App) *cobra.Command {
	var exec bool

	rootCmd := &cobra.Command{
		Use:   "runmenu [QUERY...]",
		Short: "runmenu - find and launch programs from your search path",
		Long: `runmenu builds a catalog of every executable on your search path and
picks the best match for a query.

The catalog is sorted in version order, deduplicated and cached under
~/.cache/runmenu so later runs skip the scan until a directory on the
search path changes. Names piped on stdin replace the search path.

Use subcommands to inspect or maintain the catalog:
  - list: Print the catalog
  - match: Rank catalog entries against a query
  - run: Resolve and execute a command line
  - cache: Inspect, rebuild or clear the cache
  - mount: Expose the catalog as a flat FUSE directory`,
		Version:       version.GetFullVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runRoot(cmd, app, args, exec)
		},
	}
	app.bindFlags(rootCmd)
	rootCmd.Flags().BoolVarP(&exec, "exec", "e", false, "Execute the best match instead of printing it")

	groupCatalog := "catalog"
	groupFilesystem := "filesystem"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCatalog,
		Title: "Catalog Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	listCmd := NewListCmd(app)
	matchCmd := NewMatchCmd(app)
	runCmd := NewRunCmd(app)
	cacheCmd := NewCacheCmd(app)
	statsCmd := NewStatsCmd(app)
	watchCmd := NewWatchCmd(app)
	mountCmd := NewMountCmd(app)
	seedCmd := NewSeedCmd(app)
	configCmd := NewConfigCmd(app)

	listCmd.GroupID = groupCatalog
	matchCmd.GroupID = groupCatalog
	runCmd.GroupID = groupCatalog
	cacheCmd.GroupID = groupCatalog
	mountCmd.GroupID = groupFilesystem
	watchCmd.GroupID = groupFilesystem
	statsCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	configCmd.GroupID = groupUtilities

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

// runRoot loads the catalog on a worker while the query and output are
// prepared, then prints or executes the best match.
func runRoot(cmd *cobra.Command, app *App, args []string, exec bool) error {
	opts, err := app.loaderOptions(true)
	if err != nil {
		return err
	}
	pending := catalog.Start(opts)

	query := strings.Join(args, " ")
	color := app.Config.Menu.Color && isTerminal(cmd.OutOrStdout())

	cat, err := pending.Wait()
	if err != nil {
		app.Logger.Error("loading catalog", "err", err)
		return err
	}

	session := menu.NewSession(cat)
	session.SetQuery(query)
	best, ok := session.Best()
	if !ok {
		return fmt.Errorf("%w %q", ErrNoMatch, query)
	}

	if !exec {
		fmt.Fprintln(cmd.OutOrStdout(), renderName(best.Name, color, best.MatchedIndexes))
		return nil
	}
	c, err := menu.ResolveName(cat, opts.SearchPath, best.Name)
	if err != nil {
		return err
	}
	app.Logger.Debug("executing", "path", c.Path)
	return menu.Exec(c, app.Environ())
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
