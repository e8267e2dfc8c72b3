package catalog

import (
	"fmt"
	"os"
	"strings"
)

// initialScanCapacity is sized for a typical desktop $PATH.
const initialScanCapacity = 4096

// readDirNames is replaced in tests to simulate a failing directory read.
var readDirNames = func(d *os.File) ([]string, error) {
	return d.Readdirnames(-1)
}

// Scan lists every regular file with an executable permission bit in the
// directories of sp, in search path order and directory order. Names are
// neither sorted nor deduplicated; the same program installed in two
// directories appears twice.
//
// Directories that cannot be opened are skipped, as are entries whose
// metadata cannot be read. A failure while reading an opened directory
// aborts the scan with ErrScanFailed.
func Scan(sp SearchPath) ([]Item, error) {
	items := make([]Item, 0, initialScanCapacity)
	for _, dir := range sp.Dirs() {
		var err error
		items, err = scanDir(items, dir)
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func scanDir(items []Item, dir string) ([]Item, error) {
	d, err := os.Open(dir)
	if err != nil {
		return items, nil
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil || !info.IsDir() {
		return items, nil
	}

	names, err := readDirNames(d)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrScanFailed, dir, err)
	}
	for _, name := range names {
		if !ValidName(name) {
			continue
		}
		ok, err := isExecutable(d, name)
		if err != nil || !ok {
			continue
		}
		items = append(items, Item{Name: strings.Clone(name)})
	}
	return items, nil
}

// ScanDir lists the executables of a single directory. A directory that
// cannot be opened yields no items and no error.
func ScanDir(dir string) ([]Item, error) {
	return scanDir(nil, dir)
}
