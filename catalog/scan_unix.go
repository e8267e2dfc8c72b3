//go:build linux || darwin || freebsd || netbsd || openbsd

package catalog

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// isExecutable stats name relative to the open directory handle, following
// symlinks, and reports whether it is a regular file with any execute bit.
func isExecutable(dir *os.File, name string) (bool, error) {
	var st unix.Stat_t
	err := ignoringEINTR(func() error {
		return unix.Fstatat(int(dir.Fd()), name, &st, 0)
	})
	if err != nil {
		return false, err
	}
	mode := uint32(st.Mode)
	return mode&unix.S_IFMT == unix.S_IFREG && mode&0o111 != 0, nil
}

func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
