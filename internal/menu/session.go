package menu

import (
	"cmp"
	"slices"

	"github.com/dendrascience/runmenu/catalog"
	"github.com/sahilm/fuzzy"
)

// Match is a ranked catalog entry.
type Match struct {
	catalog.Item
	// Index is the entry's position in the catalog.
	Index int
	Score int
	// MatchedIndexes are the byte offsets of the query characters in Name.
	MatchedIndexes []int
}

// Session ranks a catalog against an incrementally typed query. It updates
// the Relevance of the catalog's items in place and is not safe for
// concurrent use.
type Session struct {
	items   []catalog.Item
	query   []rune
	matches []Match
}

// NewSession starts an empty query over cat.
func NewSession(cat *catalog.Catalog) *Session {
	s := &Session{}
	if cat != nil {
		s.items = cat.Items
	}
	s.refilter()
	return s
}

// itemSource adapts a slice of items to fuzzy.Source.
type itemSource []catalog.Item

func (s itemSource) String(i int) string { return s[i].Name }
func (s itemSource) Len() int            { return len(s) }

func (s *Session) Query() string { return string(s.query) }

// Type appends r to the query.
func (s *Session) Type(r rune) {
	s.query = append(s.query, r)
	s.refilter()
}

// Backspace removes the last rune of the query. It is a no-op on an empty
// query.
func (s *Session) Backspace() {
	if len(s.query) == 0 {
		return
	}
	s.query = s.query[:len(s.query)-1]
	s.refilter()
}

// SetQuery types q one rune at a time after clearing the current query, so
// relevance grows exactly as if q had been typed.
func (s *Session) SetQuery(q string) {
	s.query = s.query[:0]
	s.refilter()
	for _, r := range q {
		s.Type(r)
	}
}

func (s *Session) refilter() {
	if len(s.query) == 0 {
		s.matches = s.matches[:0]
		for i, it := range s.items {
			s.matches = append(s.matches, Match{Item: it, Index: i})
		}
		s.rank()
		return
	}

	found := fuzzy.FindFrom(string(s.query), itemSource(s.items))
	s.matches = s.matches[:0]
	for _, m := range found {
		s.items[m.Index].Relevance++
		s.matches = append(s.matches, Match{
			Item:           s.items[m.Index],
			Index:          m.Index,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	s.rank()
}

// rank orders by score, then relevance, then catalog position.
func (s *Session) rank() {
	slices.SortFunc(s.matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Relevance, a.Relevance); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// Matches returns at most limit ranked entries. limit <= 0 returns all.
func (s *Session) Matches(limit int) []Match {
	if limit <= 0 || limit > len(s.matches) {
		limit = len(s.matches)
	}
	return slices.Clone(s.matches[:limit])
}

// Best returns the top ranked entry.
func (s *Session) Best() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	return s.matches[0], true
}
