package textkit

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-drift/textkit/pkg/graphics"
)

const (
	// TruncationAttributeName marks the highlightable range of truncation text,
	// for example "Continue Reading" in "… Continue Reading".
	TruncationAttributeName = "textkit.truncation"

	// EntityAttributeName marks a range of the main text as embedded
	// interactive content, such as a link. The value identifies the entity.
	EntityAttributeName = "textkit.entity"
)

// Range is a half-open byte range [Start, End) of a string.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Run styles the bytes [Start, End) of an AttributedString. Attributes hold
// opaque annotations that only consumers interpret.
type Run struct {
	Start      int
	End        int
	Style      graphics.SpanStyle
	Attributes map[string]string
}

// AttributedString is text with styled runs.
//
// Runs are expected sorted and non-overlapping. Bytes no run covers carry the
// zero style and no attributes. Two strings are equal when every byte has the
// same style and attributes, however the runs happen to be split.
type AttributedString struct {
	Text string
	Runs []Run
}

// NewAttributedString returns text styled with a single run.
func NewAttributedString(text string, style graphics.SpanStyle) *AttributedString {
	s := &AttributedString{Text: text}
	if text != "" {
		s.Runs = []Run{{Start: 0, End: len(text), Style: style}}
	}
	return s
}

// AttributedStringFromSpan flattens a span tree into an attributed string.
// Every leaf becomes a run carrying its fully resolved style.
func AttributedStringFromSpan(span graphics.TextSpan, base graphics.SpanStyle) *AttributedString {
	var (
		b    strings.Builder
		runs []Run
	)
	for _, st := range graphics.Flatten(span, base) {
		start := b.Len()
		b.WriteString(st.Text)
		runs = append(runs, Run{Start: start, End: b.Len(), Style: st.Style})
	}
	s := &AttributedString{Text: b.String(), Runs: runs}
	s.Runs = s.normalized()
	return s
}

// Len returns the length of the text in bytes.
func (s *AttributedString) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Text)
}

// String returns the plain text.
func (s *AttributedString) String() string {
	if s == nil {
		return ""
	}
	return s.Text
}

// AddAttribute sets name to value on the bytes [start, end), splitting runs
// at the range boundaries. Only a producer still building the string should
// call it.
func (s *AttributedString) AddAttribute(name, value string, start, end int) error {
	if start < 0 || end > len(s.Text) || start > end {
		return fmt.Errorf("textkit: range [%d, %d) out of bounds for length %d", start, end, len(s.Text))
	}
	if start == end {
		return nil
	}
	var out []Run
	for _, run := range s.normalized() {
		if run.End <= start || run.Start >= end {
			out = append(out, run)
			continue
		}
		if run.Start < start {
			head := run
			head.End = start
			out = append(out, head)
		}
		mid := run
		mid.Start = max(run.Start, start)
		mid.End = min(run.End, end)
		mid.Attributes = maps.Clone(run.Attributes)
		if mid.Attributes == nil {
			mid.Attributes = make(map[string]string, 1)
		}
		mid.Attributes[name] = value
		out = append(out, mid)
		if run.End > end {
			tail := run
			tail.Start = end
			tail.Attributes = maps.Clone(run.Attributes)
			out = append(out, tail)
		}
	}
	s.Runs = coalesce(out)
	return nil
}

// RangesWithAttribute returns the maximal ranges carrying name, whatever its
// value.
func (s *AttributedString) RangesWithAttribute(name string) []Range {
	if s == nil {
		return nil
	}
	var out []Range
	for _, run := range s.normalized() {
		if _, ok := run.Attributes[name]; !ok {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == run.Start {
			out[n-1].End = run.End
			continue
		}
		out = append(out, Range{Start: run.Start, End: run.End})
	}
	return out
}

// Clone returns a deep copy: runs and their attribute maps are not shared.
func (s *AttributedString) Clone() *AttributedString {
	if s == nil {
		return nil
	}
	out := &AttributedString{Text: s.Text}
	if s.Runs != nil {
		out.Runs = make([]Run, len(s.Runs))
		for i, run := range s.Runs {
			run.Attributes = maps.Clone(run.Attributes)
			out.Runs[i] = run
		}
	}
	return out
}

// Equal reports whether both strings have the same text and the same style
// and attributes at every byte.
func (s *AttributedString) Equal(other *AttributedString) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.Text != other.Text {
		return false
	}
	return slices.EqualFunc(s.normalized(), other.normalized(), func(a, b Run) bool {
		return a.Start == b.Start && a.End == b.End && sameRunStyle(a, b)
	})
}

func (s *AttributedString) appendHash(b []byte) []byte {
	if s == nil {
		return appendAbsent(b)
	}
	b = append(b, tagPresent)
	b = appendString(b, s.Text)
	runs := s.normalized()
	b = appendUint(b, uint64(len(runs)))
	for _, run := range runs {
		b = appendUint(b, uint64(run.Start))
		b = appendUint(b, uint64(run.End))
		b = run.Style.AppendHash(b)
		keys := slices.Sorted(maps.Keys(run.Attributes))
		b = appendUint(b, uint64(len(keys)))
		for _, k := range keys {
			b = appendString(b, k)
			b = appendString(b, run.Attributes[k])
		}
	}
	return b
}

// normalized returns runs covering the whole text, in order, with gaps filled
// by unstyled runs and equal neighbours merged. Overlapping runs are clipped
// so that the earlier run wins.
func (s *AttributedString) normalized() []Run {
	runs := slices.Clone(s.Runs)
	slices.SortStableFunc(runs, func(a, b Run) int { return a.Start - b.Start })

	out := make([]Run, 0, len(runs)+1)
	cursor := 0
	for _, run := range runs {
		start := max(run.Start, cursor)
		end := min(run.End, len(s.Text))
		if start >= end {
			continue
		}
		if start > cursor {
			out = append(out, Run{Start: cursor, End: start})
		}
		run.Start, run.End = start, end
		out = append(out, run)
		cursor = end
	}
	if cursor < len(s.Text) {
		out = append(out, Run{Start: cursor, End: len(s.Text)})
	}
	return coalesce(out)
}

// coalesce merges adjacent runs with the same style and attributes.
func coalesce(runs []Run) []Run {
	out := runs[:0]
	for _, run := range runs {
		if n := len(out); n > 0 && out[n-1].End == run.Start && sameRunStyle(out[n-1], run) {
			out[n-1].End = run.End
			continue
		}
		out = append(out, run)
	}
	return out
}

func sameRunStyle(a, b Run) bool {
	return a.Style == b.Style && maps.Equal(a.Attributes, b.Attributes)
}
