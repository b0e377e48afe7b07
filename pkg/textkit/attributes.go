package textkit

import (
	"fmt"
	"slices"

	"github.com/go-drift/textkit/pkg/errors"
	"github.com/go-drift/textkit/pkg/graphics"
)

// LineBreakMode selects how lines are broken. Because the mode also drives
// how truncation picks its break point, only word and character wrapping are
// supported; callers normalize any other mode before building attributes.
type LineBreakMode int

const (
	// LineBreakByWordWrapping breaks lines at word boundaries.
	LineBreakByWordWrapping LineBreakMode = iota
	// LineBreakByCharWrapping breaks lines between any two characters.
	LineBreakByCharWrapping
)

// String returns a human-readable representation of the line-break mode.
func (m LineBreakMode) String() string {
	switch m {
	case LineBreakByWordWrapping:
		return "word"
	case LineBreakByCharWrapping:
		return "char"
	default:
		return fmt.Sprintf("LineBreakMode(%d)", int(m))
	}
}

// LayoutAttributes is a snapshot of text-layout configuration.
//
// It is built with a composite literal and never mutated afterwards. Reference
// fields (pointers and slices) are owned by the instance; use Copy before
// handing an instance to work that may outlive the caller.
//
// Equality is structural except for LayoutManagerFactory, which compares by
// identity. The nil value of every optional field means "absent" and is never
// equal to a present value, even an empty one.
type LayoutAttributes struct {
	// AttributedString is the text to draw. It must be complete: consumers
	// never add default colors or fonts to it.
	AttributedString *AttributedString

	// TruncationAttributedString replaces the tail of the text when it does
	// not fit, usually "…". Mark the highlightable part with
	// TruncationAttributeName.
	TruncationAttributedString *AttributedString

	// AvoidTailTruncationSet holds the characters truncation tries not to leave
	// right before the truncation text. nil means the default set
	// (whitespace and ".,!?:;"); an empty set disables the behavior.
	AvoidTailTruncationSet *CharacterSet

	LineBreakMode LineBreakMode

	// MaximumNumberOfLines limits the drawn lines. 0 means no limit.
	MaximumNumberOfLines uint

	// ExclusionPaths are closed regions inside the layout rectangle that text
	// flows around. nil means none were given.
	ExclusionPaths []*graphics.Path

	// ShadowOffset uses screen coordinates: positive X is right, positive Y
	// is down.
	ShadowOffset graphics.Offset
	ShadowColor  *graphics.Color
	// ShadowOpacity is expected in [0, 1].
	ShadowOpacity float64
	// ShadowRadius is the blur radius; larger means softer.
	ShadowRadius float64

	// MinimumScaleFactor is how far the text may shrink to fit long words,
	// in (0, 1]. 1 disables shrinking.
	MinimumScaleFactor float64

	// LayoutManagerFactory produces the layout engine. nil selects the
	// default engine.
	LayoutManagerFactory LayoutManagerFactory
}

// Copy returns a deep copy of a. Text, truncation text, the character set,
// every exclusion path and the shadow color are newly allocated; scalar
// fields and the factory reference are duplicated. Copy of nil is nil.
func (a *LayoutAttributes) Copy() *LayoutAttributes {
	if a == nil {
		return nil
	}
	return &LayoutAttributes{
		AttributedString:           a.AttributedString.Clone(),
		TruncationAttributedString: a.TruncationAttributedString.Clone(),
		AvoidTailTruncationSet:     a.AvoidTailTruncationSet.Clone(),
		LineBreakMode:              a.LineBreakMode,
		MaximumNumberOfLines:       a.MaximumNumberOfLines,
		ExclusionPaths:             clonePaths(a.ExclusionPaths),
		ShadowOffset:               a.ShadowOffset,
		ShadowColor:                a.ShadowColor.Clone(),
		ShadowOpacity:              a.ShadowOpacity,
		ShadowRadius:               a.ShadowRadius,
		MinimumScaleFactor:         a.MinimumScaleFactor,
		LayoutManagerFactory:       a.LayoutManagerFactory,
	}
}

// Equal reports whether a and b describe the same layout.
//
// Scalar fields are compared before the reference fields so that cache
// lookups usually fail fast.
func (a *LayoutAttributes) Equal(b *LayoutAttributes) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.LineBreakMode == b.LineBreakMode &&
		a.MaximumNumberOfLines == b.MaximumNumberOfLines &&
		a.ShadowOpacity == b.ShadowOpacity &&
		a.ShadowRadius == b.ShadowRadius &&
		a.MinimumScaleFactor == b.MinimumScaleFactor &&
		sameFactory(a.LayoutManagerFactory, b.LayoutManagerFactory) &&
		a.ShadowOffset == b.ShadowOffset &&
		pathsEqual(a.ExclusionPaths, b.ExclusionPaths) &&
		a.AvoidTailTruncationSet.Equal(b.AvoidTailTruncationSet) &&
		colorsEqual(a.ShadowColor, b.ShadowColor) &&
		a.AttributedString.Equal(b.AttributedString) &&
		a.TruncationAttributedString.Equal(b.TruncationAttributedString)
}

// Diff names the fields of a and b that do not compare equal, in the order
// Equal checks them. It returns nil when a and b are equal. Either side may
// be nil, in which case every field differs.
func (a *LayoutAttributes) Diff(b *LayoutAttributes) []string {
	if a == b {
		return nil
	}
	if a == nil || b == nil {
		return slices.Clone(fieldNames)
	}
	same := []bool{
		a.LineBreakMode == b.LineBreakMode,
		a.MaximumNumberOfLines == b.MaximumNumberOfLines,
		a.ShadowOpacity == b.ShadowOpacity,
		a.ShadowRadius == b.ShadowRadius,
		a.MinimumScaleFactor == b.MinimumScaleFactor,
		sameFactory(a.LayoutManagerFactory, b.LayoutManagerFactory),
		a.ShadowOffset == b.ShadowOffset,
		pathsEqual(a.ExclusionPaths, b.ExclusionPaths),
		a.AvoidTailTruncationSet.Equal(b.AvoidTailTruncationSet),
		colorsEqual(a.ShadowColor, b.ShadowColor),
		a.AttributedString.Equal(b.AttributedString),
		a.TruncationAttributedString.Equal(b.TruncationAttributedString),
	}
	var out []string
	for i, ok := range same {
		if !ok {
			out = append(out, fieldNames[i])
		}
	}
	return out
}

// fieldNames lists the compared fields in Equal order.
var fieldNames = []string{
	"lineBreakMode",
	"maximumNumberOfLines",
	"shadowOpacity",
	"shadowRadius",
	"minimumScaleFactor",
	"layoutManagerFactory",
	"shadowOffset",
	"exclusionPaths",
	"avoidTailTruncationSet",
	"shadowColor",
	"attributedString",
	"truncationAttributedString",
}

// Hash returns a hash consistent with Equal. Values are stable for the life
// of the process, not across processes.
func (a *LayoutAttributes) Hash() uint64 {
	if a == nil {
		return sum(appendAbsent(nil))
	}
	b := make([]byte, 0, 256)
	b = appendUint(b, uint64(a.LineBreakMode))
	b = appendUint(b, uint64(a.MaximumNumberOfLines))
	b = appendFloat(b, a.ShadowOpacity)
	b = appendFloat(b, a.ShadowRadius)
	b = appendFloat(b, a.MinimumScaleFactor)
	b = appendFactory(b, a.LayoutManagerFactory)
	b = appendFloat(b, a.ShadowOffset.X)
	b = appendFloat(b, a.ShadowOffset.Y)
	b = appendPaths(b, a.ExclusionPaths)
	b = a.AvoidTailTruncationSet.appendHash(b)
	b = appendColor(b, a.ShadowColor)
	b = a.AttributedString.appendHash(b)
	b = a.TruncationAttributedString.appendHash(b)
	return sum(b)
}

// ResolvedAvoidTailTruncationSet returns the set a truncation algorithm should
// use: AvoidTailTruncationSet, or the default set when it is nil.
func (a *LayoutAttributes) ResolvedAvoidTailTruncationSet() *CharacterSet {
	if a.AvoidTailTruncationSet != nil {
		return a.AvoidTailTruncationSet
	}
	return DefaultAvoidTailTruncationSet()
}

// TextShadow returns the shadow to draw behind the text, with ShadowOpacity
// applied to the color's alpha. It returns nil when there is no shadow color
// or the result would be fully transparent.
func (a *LayoutAttributes) TextShadow() *graphics.TextShadow {
	if a.ShadowColor == nil {
		return nil
	}
	color := a.ShadowColor.WithAlpha(a.ShadowColor.Alpha() * a.ShadowOpacity)
	shadow := &graphics.TextShadow{
		Color:      color,
		Offset:     a.ShadowOffset,
		BlurRadius: a.ShadowRadius,
	}
	if !shadow.IsVisible() {
		return nil
	}
	return shadow
}

// NewLayoutManager returns a fresh layout manager from LayoutManagerFactory,
// or the default layout manager when no factory is set. A factory that
// returns nil is reported to the error handler and the default is used.
func (a *LayoutAttributes) NewLayoutManager() LayoutManager {
	if a.LayoutManagerFactory != nil {
		if m := a.LayoutManagerFactory.NewLayoutManager(); m != nil {
			return m
		}
		errors.Report(&errors.TextKitError{
			Op:   "textkit.LayoutAttributes.NewLayoutManager",
			Kind: errors.KindLayout,
			Err:  fmt.Errorf("%T returned a nil layout manager", a.LayoutManagerFactory),
		})
	}
	return DefaultLayoutManager()
}

func clonePaths(paths []*graphics.Path) []*graphics.Path {
	if paths == nil {
		return nil
	}
	out := make([]*graphics.Path, len(paths))
	for i, p := range paths {
		out[i] = p.Clone()
	}
	return out
}

func pathsEqual(a, b []*graphics.Path) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i, p := range a {
		if !p.Equal(b[i]) {
			return false
		}
	}
	return true
}

func colorsEqual(a, b *graphics.Color) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
