package catalog

import "strings"

// Source records which branch of Load produced a catalog.
type Source int

const (
	SourceScan Source = iota
	SourceCache
	SourceStream
)

func (s Source) String() string {
	switch s {
	case SourceScan:
		return "scan"
	case SourceCache:
		return "cache"
	case SourceStream:
		return "stream"
	default:
		return "unknown"
	}
}

type (
	// Item is a single runnable program.
	Item struct {
		Name      string // program name as it appears in a search path directory
		Relevance uint32 // maintained by the menu, never by the loader
	}
	// Catalog is the ordered list of items handed to the menu.
	Catalog struct {
		Items  []Item
		Source Source
	}
)

// ValidName reports whether name can be stored in a cache record.
func ValidName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "\n\x00")
}

// NewItems wraps names in Items with zero relevance.
func NewItems(names ...string) []Item {
	items := make([]Item, len(names))
	for i, name := range names {
		items[i].Name = name
	}
	return items
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Names returns the item names in catalog order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.Items))
	for i, it := range c.Items {
		names[i] = it.Name
	}
	return names
}

func (c *Catalog) Iterate(yield func(Item) bool) {
	if c == nil {
		return
	}
	for _, it := range c.Items {
		if !yield(it) {
			return
		}
	}
}
