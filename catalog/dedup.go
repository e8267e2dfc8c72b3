package catalog

// Dedup removes adjacent items with byte-wise equal names, keeping the first
// of each group, and returns the compacted prefix of items. The input must
// already be sorted so that equal names are adjacent.
func Dedup(items []Item) []Item {
	if len(items) < 2 {
		return items
	}
	m := 1
	for j := 1; j < len(items); j++ {
		if items[j].Name != items[m-1].Name {
			items[m] = items[j]
			m++
		}
	}
	clear(items[m:])
	return items[:m]
}
