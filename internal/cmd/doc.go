// Package cmd provides the command-line interface implementation for runmenu.
//
// This package contains all the subcommand implementations for the runmenu CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Pick the best match for a query, optionally executing it
//   - list, match, run: Catalog queries and execution
//   - cache: Cache inspection and maintenance
//   - mount, watch: FUSE bin view and cache refresh on change
//   - stats, seed, config: Utilities
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Constructors share an *App, which
// the root command fills in from configuration before any subcommand runs.
package cmd
