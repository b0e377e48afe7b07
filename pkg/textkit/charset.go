package textkit

import (
	"slices"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// defaultAvoidTailPunctuation joins Unicode white space in the default
// avoid-tail set.
var defaultAvoidTailPunctuation = []rune{'.', ',', '!', '?', ':', ';'}

// CharacterSet is a set of runes backed by a [unicode.RangeTable].
// Sets compare by membership, not by how their tables are laid out.
type CharacterSet struct {
	table *unicode.RangeTable
}

// NewCharacterSet returns a set holding runes. With no arguments the set is
// empty.
func NewCharacterSet(runes ...rune) *CharacterSet {
	return &CharacterSet{table: newTable(runes)}
}

// CharacterSetFromString returns a set holding every rune of s.
func CharacterSetFromString(s string) *CharacterSet {
	return NewCharacterSet([]rune(s)...)
}

// CharacterSetFromTable returns a set holding every rune of the given tables.
// The tables are copied.
func CharacterSetFromTable(tables ...*unicode.RangeTable) *CharacterSet {
	return &CharacterSet{table: rangetable.Merge(tables...)}
}

// DefaultAvoidTailTruncationSet returns a new set holding Unicode white space
// and ".,!?:;". It is what a nil AvoidTailTruncationSet stands for.
func DefaultAvoidTailTruncationSet() *CharacterSet {
	return CharacterSetFromTable(unicode.White_Space, newTable(defaultAvoidTailPunctuation))
}

// newTable builds a table from runes without reordering the caller's slice.
func newTable(runes []rune) *unicode.RangeTable {
	if len(runes) == 0 {
		return &unicode.RangeTable{}
	}
	sorted := slices.Clone(runes)
	slices.Sort(sorted)
	return rangetable.New(slices.Compact(sorted)...)
}

// Contains reports whether r is in the set. A nil set contains nothing.
func (s *CharacterSet) Contains(r rune) bool {
	if s == nil || s.table == nil {
		return false
	}
	return unicode.Is(s.table, r)
}

// IsEmpty reports whether the set holds no runes.
func (s *CharacterSet) IsEmpty() bool {
	if s == nil || s.table == nil {
		return true
	}
	empty := true
	rangetable.Visit(s.table, func(rune) { empty = false })
	return empty
}

// Add inserts runes into the set. Only a producer still building the set
// should call it.
func (s *CharacterSet) Add(runes ...rune) {
	if len(runes) == 0 {
		return
	}
	if s.table == nil {
		s.table = newTable(runes)
		return
	}
	s.table = rangetable.Merge(s.table, newTable(runes))
}

// Runes returns the members in ascending order.
func (s *CharacterSet) Runes() []rune {
	if s == nil || s.table == nil {
		return nil
	}
	var out []rune
	rangetable.Visit(s.table, func(r rune) { out = append(out, r) })
	return out
}

// Table returns a copy of the backing table, for use with the unicode package.
func (s *CharacterSet) Table() *unicode.RangeTable {
	if s == nil || s.table == nil {
		return &unicode.RangeTable{}
	}
	return rangetable.Merge(s.table)
}

// Clone returns an independent copy of the set, or nil for a nil receiver.
func (s *CharacterSet) Clone() *CharacterSet {
	if s == nil {
		return nil
	}
	if s.table == nil {
		return &CharacterSet{}
	}
	return &CharacterSet{table: rangetable.Merge(s.table)}
}

// Equal reports whether both sets hold the same runes. A nil set equals only
// another nil set; in particular nil is not equal to an empty set.
func (s *CharacterSet) Equal(other *CharacterSet) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.table == other.table {
		return true
	}
	return slices.Equal(s.intervals(), other.intervals())
}

func (s *CharacterSet) appendHash(b []byte) []byte {
	if s == nil {
		return appendAbsent(b)
	}
	b = append(b, tagPresent)
	spans := s.intervals()
	b = appendUint(b, uint64(len(spans)))
	for _, iv := range spans {
		b = appendUint(b, uint64(iv.lo))
		b = appendUint(b, uint64(iv.hi))
	}
	return b
}

// interval is the closed rune range [lo, hi].
type interval struct {
	lo, hi rune
}

// intervals returns the members as sorted, disjoint, non-adjacent ranges.
// The result depends only on membership, never on how the table is laid out.
func (s *CharacterSet) intervals() []interval {
	if s.table == nil {
		return nil
	}
	var spans []interval
	add := func(lo, hi, stride rune) {
		if stride <= 1 {
			spans = append(spans, interval{lo, hi})
			return
		}
		for r := lo; r <= hi; r += stride {
			spans = append(spans, interval{r, r})
		}
	}
	for _, r := range s.table.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range s.table.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	slices.SortFunc(spans, func(a, b interval) int { return int(a.lo - b.lo) })

	out := spans[:0]
	for _, iv := range spans {
		if n := len(out); n > 0 && iv.lo <= out[n-1].hi+1 {
			out[n-1].hi = max(out[n-1].hi, iv.hi)
			continue
		}
		out = append(out, iv)
	}
	return out
}
