package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LookPath returns the full path of the first executable called name in the
// directories of sp. Unlike the catalog, which collapses duplicates by name,
// lookup honours search path order. A name containing a slash is checked as
// is and never searched.
func LookPath(sp SearchPath, name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if strings.Contains(name, "/") {
		dir, base := filepath.Split(name)
		if dir == "" {
			dir = "."
		}
		if found, _ := executableIn(dir, base); found {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, dir := range sp.Dirs() {
		found, err := executableIn(dir, name)
		if err != nil {
			continue
		}
		if found {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func executableIn(dir, name string) (bool, error) {
	d, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer d.Close()
	return isExecutable(d, name)
}
