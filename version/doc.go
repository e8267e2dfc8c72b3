// Package version reports runmenu's version and build metadata.
//
// Values come from, in order of preference:
//   - -ldflags "-X github.com/dendrascience/runmenu/version.Version=v1.2.3" (and Commit, Date)
//   - debug.ReadBuildInfo(), for go install builds
//   - development defaults
//
// GetFullVersion is what --version prints.
package version
