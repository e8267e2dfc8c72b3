//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package catalog

import (
	"os"
	"path/filepath"
)

func isExecutable(dir *os.File, name string) (bool, error) {
	info, err := os.Stat(filepath.Join(dir.Name(), name))
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0, nil
}
