package cmd

import (
	"fmt"
	"strings"

	"github.com/dendrascience/runmenu/internal/menu"
	"github.com/spf13/cobra"
)

// NewRunCmd creates and returns the run subcommand.
func NewRunCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run COMMAND-LINE",
		Short: "Resolve and execute a command line",
		Long: `Split COMMAND-LINE with POSIX shell quoting and parameter expansion,
check that the program is in the catalog, find it in search path order and
replace runmenu with it.

Multiple arguments are joined with spaces before splitting, so both
  runmenu run 'grep -r "two words" .'
and
  runmenu run -- grep -r '"two words"' .
work.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, opts, err := app.loadCatalog(false)
			if err != nil {
				return err
			}

			c, err := menu.Resolve(cat, opts.SearchPath, strings.Join(args, " "), app.getenv)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", c.Path, c.Args)
				return nil
			}
			app.Logger.Debug("executing", "path", c.Path, "args", c.Args)
			return menu.Exec(c, app.Environ())
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the resolved program and arguments instead of executing")

	return cmd
}
