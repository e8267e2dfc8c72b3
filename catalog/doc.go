// Package catalog builds the list of runnable programs shown by runmenu.
//
// The catalog is the ordered, deduplicated set of executable names reachable
// through a colon-delimited search path (normally $PATH). Building it is the
// only part of runmenu that touches the filesystem in bulk, so the package
// keeps an on-disk cache and only walks the search path when the cache can no
// longer be trusted.
//
// Key Components:
//
// Ordering:
//   - Compare: version-aware string ordering ("item2" < "item10")
//   - Sort: insertion-sorted runs of RunSize merged bottom-up
//   - Dedup: in-place removal of adjacent duplicates
//
// Sources:
//   - Scan: regular files with an executable bit in every search path directory
//   - ReadStream: whitespace-separated names piped in on stdin
//
// Cache:
//   - Cache.Validate: mtime-based staleness check followed by decoding
//   - Cache.Write: persists a catalog for the next invocation
//   - Encode/Decode: the line-oriented cache record format
//
// Loading:
//   - Load: picks the stream, the cache or a fresh scan, in that order
//   - Start/Pending: runs Load on a worker goroutine and hands the result
//     over at Wait
//
// Cache problems are never fatal. A missing, stale, mismatched or corrupt cache
// only forces a rescan, and a failed cache write leaves the in-memory catalog
// intact. Missing environment variables and read failures while scanning or
// streaming are returned as errors since no catalog can be produced.
package catalog
