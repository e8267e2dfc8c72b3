package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for package catalog.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Configuration errors
	ErrMissingEnv = errors.New("required environment variable is not set")

	// Build errors; a catalog cannot be produced when one of these is returned
	ErrScanFailed   = errors.New("failed to scan search path")
	ErrStreamFailed = errors.New("failed to read piped input")

	// Codec errors
	ErrInvalidName = errors.New("item name is empty or contains a newline")

	// Lookup errors
	ErrNotFound = errors.New("executable not found in search path")

	// Cache misses. Every variant wraps ErrCacheMiss, so callers that only
	// care whether the cache was usable can check for that.
	ErrCacheMiss         = errors.New("cache miss")
	ErrCacheAbsent       = fmt.Errorf("%w: cache file absent or empty", ErrCacheMiss)
	ErrCacheStale        = fmt.Errorf("%w: search path changed since cache was written", ErrCacheMiss)
	ErrCachePathMismatch = fmt.Errorf("%w: cache was built for a different search path", ErrCacheMiss)
	ErrCacheCorrupt      = fmt.Errorf("%w: cache file is corrupt", ErrCacheMiss)
)
