package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dendrascience/runmenu/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates and returns the config subcommand.
func NewConfigCmd(app *App) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the effective configuration as TOML, after defaults, the config
file, RUNMENU_* environment variables and command-line flags are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showPath {
				path := app.ConfigPath
				if path == "" {
					dir, err := config.ConfigDir()
					if err != nil {
						return err
					}
					path = filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt) + " (not present)"
				}
				fmt.Fprintln(out, path)
				return nil
			}
			return app.Config.WriteTOML(out)
		},
	}

	cmd.Flags().BoolVar(&showPath, "file", false, "Print the config file location instead")

	return cmd
}
