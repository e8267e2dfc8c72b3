package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dendrascience/runmenu/internal/menu"
	"github.com/spf13/cobra"
)

// NewMatchCmd creates and returns the match subcommand.
func NewMatchCmd(app *App) *cobra.Command {
	var (
		limit   int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "match QUERY...",
		Short: "Rank catalog entries against a query",
		Long: `Rank catalog entries against QUERY with fuzzy matching.

The query is typed into a menu session one character at a time, so entries
that keep matching as the query grows collect relevance. Results are
ordered by match score, then relevance, then catalog order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := app.loadCatalog(true)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = app.Config.Menu.Limit
			}

			session := menu.NewSession(cat)
			session.SetQuery(strings.Join(args, " "))
			matches := session.Matches(limit)
			if len(matches) == 0 {
				return fmt.Errorf("%w %q", ErrNoMatch, session.Query())
			}

			color := app.Config.Menu.Color && isTerminal(cmd.OutOrStdout())
			out := cmd.OutOrStdout()
			if !verbose {
				for _, m := range matches {
					fmt.Fprintln(out, renderName(m.Name, color, m.MatchedIndexes))
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSCORE\tRELEVANCE")
			for _, m := range matches {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", renderName(m.Name, color, m.MatchedIndexes), m.Score, m.Relevance)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of matches (0 for all; default: menu.limit)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show score and relevance")

	return cmd
}
