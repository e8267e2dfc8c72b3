package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the list subcommand.
func NewListCmd(app *App) *cobra.Command {
	var (
		count bool
		color bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog",
		Long: `Print every catalog entry, one per line, in catalog order.

The catalog comes from piped stdin when present, otherwise from the cache
or a fresh scan of the search path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := app.loadCatalog(true)
			if err != nil {
				return err
			}
			app.Logger.Debug("catalog ready", "source", cat.Source, "items", cat.Len())

			if count {
				fmt.Fprintln(cmd.OutOrStdout(), cat.Len())
				return nil
			}

			useColor := app.Config.Menu.Color && isTerminal(cmd.OutOrStdout())
			if cmd.Flags().Changed("color") {
				useColor = color
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for it := range cat.Iterate {
				fmt.Fprintln(w, renderName(it.Name, useColor, nil))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&count, "count", "c", false, "Print only the number of entries")
	cmd.Flags().BoolVar(&color, "color", false, "Colour names (default: menu.color when writing to a terminal)")

	return cmd
}
