package catalog

import "strings"

// ListSeparator separates directories in a SearchPath.
const ListSeparator = ":"

// SearchPath is a colon-delimited list of directories, usually $PATH. The
// exact string is stored in the cache header, so two search paths that
// name the same directories differently still invalidate each other's cache.
type SearchPath string

// Dirs returns the directories of the search path in order. Empty
// components are skipped.
func (p SearchPath) Dirs() []string {
	parts := strings.Split(string(p), ListSeparator)
	dirs := parts[:0]
	for _, dir := range parts {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (p SearchPath) String() string {
	return string(p)
}
