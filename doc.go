// Package main provides the runmenu command-line interface.
//
// runmenu builds a catalog of the executables on the search path, sorted in
// version order and deduplicated, and caches it so later invocations start
// instantly. A query picks the best match, which is printed or, with
// --exec, executed in place of runmenu.
//
// The main binary supports multiple subcommands:
//   - list: Print the catalog
//   - match: Rank catalog entries against a query
//   - run: Resolve and execute a command line
//   - cache: Inspect, rebuild or clear the cache
//   - stats: Count executables per search path directory
//   - watch: Rebuild the cache when the search path changes
//   - mount: Expose the catalog as a flat FUSE bin directory
//   - seed: Generate a synthetic search path
//   - config: Show the effective configuration
package main
