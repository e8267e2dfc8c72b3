package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// maxTokenSize bounds a single piped name.
const maxTokenSize = 1 << 20

// IsPipe reports whether f is a named pipe rather than a terminal or a
// regular file, i.e. whether names are being piped into runmenu.
func IsPipe(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeNamedPipe == 0 {
		return false
	}
	return !term.IsTerminal(int(f.Fd()))
}

// ReadStream reads r to EOF and returns one Item per token, in stream order.
// Tokens are separated by ASCII whitespace only; tokens longer than
// maxTokenSize are dropped. Tokens are neither sorted nor deduplicated.
func ReadStream(r io.Reader) ([]Item, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		items   []Item
		tok     []byte
		tooLong bool
	)
	flush := func() {
		if !tooLong && len(tok) > 0 {
			if name := string(tok); ValidName(name) {
				items = append(items, Item{Name: name})
			}
		}
		tok = tok[:0]
		tooLong = false
	}

	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			flush()
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStreamFailed, err)
		}
		switch {
		case isSpace(c):
			flush()
		case tooLong:
		case len(tok) == maxTokenSize:
			tooLong = true
			tok = tok[:0]
		default:
			tok = append(tok, c)
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
