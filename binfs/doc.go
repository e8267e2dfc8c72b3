// Package binfs exposes a catalog as a flat, read-only FUSE directory.
//
// Every catalog entry appears as a symlink named after the program, pointing
// at the file that would run for that name: the first match in search path
// order. The result is a single directory equivalent to the whole search
// path, handy for tools that only accept one bin directory.
//
// Layout:
//   - /: one symlink per catalog entry, sorted as in the catalog
//
// Targets are resolved lazily on readlink and kept in a bounded LRU cache.
// Update swaps in a new catalog and drops every cached target.
//
// The main entry point is New() which creates a filesystem instance that can
// be served with bazil.org/fuse.
package binfs
