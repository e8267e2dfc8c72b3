package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/spf13/cobra"
)

type dirStats struct {
	Dir   string
	Count int
}

type searchPathStats struct {
	Dirs   []dirStats
	Total  int // executables over all directories
	Unique int // catalog entries after sort and dedup
}

// NewStatsCmd creates and returns the stats subcommand.
func NewStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count executables per search path directory",
		Long: `Count the executables in each search path directory.

Prints a row per directory, the total number of executables, how many
unique names remain after deduplication and the state of the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.loaderOptions(false)
			if err != nil {
				return err
			}
			st, err := collectStats(opts.SearchPath)
			if err != nil {
				return err
			}
			_, cacheErr := opts.Cache().Validate(opts.SearchPath)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIRECTORY\tEXECUTABLES")
			for _, d := range st.Dirs {
				fmt.Fprintf(tw, "%s\t%d\n", d.Dir, d.Count)
			}
			fmt.Fprintf(tw, "total\t%d\n", st.Total)
			fmt.Fprintf(tw, "unique\t%d\n", st.Unique)
			fmt.Fprintf(tw, "cache\t%s\n", cacheStatus(cacheErr))
			return tw.Flush()
		},
	}
}

func collectStats(sp catalog.SearchPath) (searchPathStats, error) {
	var (
		st  searchPathStats
		all []catalog.Item
	)
	for _, dir := range sp.Dirs() {
		items, err := catalog.ScanDir(dir)
		if err != nil {
			return st, err
		}
		st.Dirs = append(st.Dirs, dirStats{Dir: dir, Count: len(items)})
		st.Total += len(items)
		all = append(all, items...)
	}
	catalog.Sort(all)
	st.Unique = len(catalog.Dedup(all))
	return st, nil
}
