package catalog

import (
	"cmp"
	"strings"
)

// Compare orders two names the way a person reads version numbers: bytes
// compare lexicographically, except that maximal runs of decimal digits
// compare by numeric value, then by run length, so "v9" < "v10" and
// "v1" < "v01". It returns 0 only when a and b are byte-wise equal.
func Compare(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) {
		ca, cb := a[i], b[i]
		if isDigit(ca) && isDigit(cb) {
			ea, eb := digitRunEnd(a, i), digitRunEnd(b, i)
			if c := compareDigitRuns(a[i:ea], b[i:eb]); c != 0 {
				return c
			}
			// equal runs have equal length, so both strings advance together
			i = ea
			continue
		}
		if ca != cb {
			return cmp.Compare(ca, cb)
		}
		i++
	}
	return cmp.Compare(len(a), len(b))
}

// Less reports whether a sorts before b under Compare.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

func compareItems(a, b Item) int {
	return Compare(a.Name, b.Name)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func digitRunEnd(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func compareDigitRuns(x, y string) int {
	tx, ty := strings.TrimLeft(x, "0"), strings.TrimLeft(y, "0")
	if c := cmp.Compare(len(tx), len(ty)); c != 0 {
		return c
	}
	if c := strings.Compare(tx, ty); c != 0 {
		return c
	}
	return cmp.Compare(len(x), len(y))
}
