package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes a cache record for items built from path:
//
//	<path>
//	<count>
//
//	<name-1>
//	...
//	<name-N>
//
// Nothing is written if path contains a newline or an item name is not
// ValidName.
func Encode(w io.Writer, path string, items []Item) error {
	if strings.ContainsAny(path, "\n") {
		return fmt.Errorf("%w: search path contains a newline", ErrInvalidName)
	}
	for _, it := range items {
		if !ValidName(it.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, it.Name)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d\n\n", path, len(items))
	for _, it := range items {
		bw.WriteString(it.Name)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Decode parses a cache record and returns the search path it was built
// from and its items. Any structural problem (missing or non-numeric count,
// fewer or more names than declared) is reported as ErrCacheCorrupt.
func Decode(data []byte) (string, []Item, error) {
	path, rest, ok := strings.Cut(string(data), "\n")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing item count", ErrCacheCorrupt)
	}
	countLine, body, _ := strings.Cut(rest, "\n")
	count, err := strconv.Atoi(countLine)
	if err != nil || count < 0 {
		return path, nil, fmt.Errorf("%w: bad item count %q", ErrCacheCorrupt, countLine)
	}

	lines := strings.Split(body, "\n")
	items := make([]Item, 0, min(count, len(lines)))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if len(items) == count {
			return path, nil, fmt.Errorf("%w: more than %d names", ErrCacheCorrupt, count)
		}
		items = append(items, Item{Name: line})
	}
	if len(items) != count {
		return path, nil, fmt.Errorf("%w: declared %d names, found %d", ErrCacheCorrupt, count, len(items))
	}
	return path, items, nil
}
