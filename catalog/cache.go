package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultCachePath returns the cache location for a home directory.
func DefaultCachePath(home string) string {
	return filepath.Join(home, ".cache", "runmenu", "cache")
}

// Cache is the on-disk copy of the last scanned catalog.
type Cache struct {
	Path string
	// Atomic writes the record to a temporary file and renames it over Path,
	// so concurrent runmenu processes never observe a half-written cache.
	Atomic bool
}

// Validate returns the cached catalog if it can be trusted for sp. The cache
// is trusted when it exists, no directory of sp was modified after the cache
// file, it was built for exactly sp, and it decodes cleanly. Every failure
// is returned as an error wrapping ErrCacheMiss.
func (c Cache) Validate(sp SearchPath) (*Catalog, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheAbsent, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheAbsent, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return nil, ErrCacheAbsent
	}

	if err := checkFresh(sp, info.ModTime()); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}
	header, _, _ := bytes.Cut(data, []byte{'\n'})
	if string(header) != sp.String() {
		return nil, ErrCachePathMismatch
	}

	_, items, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &Catalog{Items: items, Source: SourceCache}, nil
}

// checkFresh fails if any directory of sp cannot be stat'ed or was modified
// strictly after cached.
func checkFresh(sp SearchPath, cached time.Time) error {
	for _, dir := range sp.Dirs() {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCacheStale, err)
		}
		if info.ModTime().After(cached) {
			return fmt.Errorf("%w: %s modified at %s", ErrCacheStale, dir, info.ModTime().Format(time.RFC3339Nano))
		}
	}
	return nil
}

// Write replaces the cache with a record of items built from sp, creating
// the cache directory if needed.
func (c Cache) Write(sp SearchPath, items []Item) error {
	var buf bytes.Buffer
	if err := Encode(&buf, sp.String(), items); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if c.Atomic {
		return writeFileAtomic(c.Path, buf.Bytes())
	}
	return os.WriteFile(c.Path, buf.Bytes(), 0o644)
}

// Remove deletes the cache file. A cache that does not exist is not an error.
func (c Cache) Remove() error {
	err := os.Remove(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func writeFileAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace cache: %w", err)
	}
	return nil
}
