package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type seedStats struct {
	Executables int
	Plain       int
	Names       int
}

// NewSeedCmd creates and returns the seed subcommand.
// It generates a synthetic search path for benchmarking scans and caches.
func NewSeedCmd(app *App) *cobra.Command {
	var (
		outputPath string
		dirCount   int
		fileCount  int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic search path",
		Long: `Generate directories full of fake executables for exercising runmenu.

Creates DIRS directories named bin00, bin01, ... under the output path and
spreads COUNT files across them. Names come from a pool of UUID prefixes,
many with version suffixes, and the pool is smaller than COUNT so the same
name shows up in several directories. About one file in ten is left without
execute permission and should not appear in the catalog.

The generated search path is printed on stdout, ready for --path or
RUNMENU_SEARCH_PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Generating %d files in %d directories under %s\n", fileCount, dirCount, outputPath)
			}
			sp, st, err := seedSearchPath(outputPath, dirCount, fileCount, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
			if err != nil {
				app.Logger.Error("seeding failed", "output", outputPath, "err", err)
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Created %d executables and %d plain files from %d names\n", st.Executables, st.Plain, st.Names)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&dirCount, "dirs", "d", 8, "Number of directories")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 5000, "Number of files to generate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func seedSearchPath(outputPath string, dirCount, fileCount int, rng *rand.Rand) (catalog.SearchPath, seedStats, error) {
	var st seedStats
	if dirCount < 1 {
		return "", st, fmt.Errorf("need at least one directory, got %d", dirCount)
	}

	dirs := make([]string, dirCount)
	for i := range dirs {
		dirs[i] = filepath.Join(outputPath, fmt.Sprintf("bin%02d", i))
		if err := os.MkdirAll(dirs[i], 0o755); err != nil {
			return "", st, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	pool := make([]string, max(1, fileCount/2))
	for i := range pool {
		pool[i] = seedName(rng)
	}
	st.Names = len(pool)

	for range fileCount {
		dir := dirs[rng.IntN(len(dirs))]
		path := filepath.Join(dir, pool[rng.IntN(len(pool))])
		if _, err := os.Lstat(path); err == nil {
			continue
		}

		mode := os.FileMode(0o755)
		if rng.IntN(10) == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), mode); err != nil {
			return "", st, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := os.Chmod(path, mode); err != nil {
			return "", st, fmt.Errorf("failed to chmod %s: %w", path, err)
		}
		if mode&0o111 != 0 {
			st.Executables++
		} else {
			st.Plain++
		}
	}

	return catalog.SearchPath(strings.Join(dirs, catalog.ListSeparator)), st, nil
}

// seedName returns a UUID prefix, often followed by a version so the
// version-aware ordering gets exercised.
func seedName(rng *rand.Rand) string {
	base := uuid.New().String()[:8]
	switch rng.IntN(4) {
	case 0:
		return fmt.Sprintf("%s%d", base, rng.IntN(20))
	case 1:
		return fmt.Sprintf("%s-%d.%d", base, rng.IntN(4), rng.IntN(12))
	default:
		return base
	}
}
