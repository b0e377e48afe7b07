package textkit

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/textkit/pkg/graphics"
)

// LayoutManager is the engine that lays out text for a LayoutAttributes.
// textkit only hands engines out; it never calls them itself.
type LayoutManager interface {
	// Measure returns the unwrapped extent of text: the widest line by the
	// number of lines.
	Measure(text string) graphics.Size
}

// LayoutManagerFactory creates layout managers.
//
// Factories are compared by identity, never by calling them. Comparable values
// compare with ==; funcs and maps compare by address. Pointer types are the
// norm; see [FactoryFunc].
type LayoutManagerFactory interface {
	NewLayoutManager() LayoutManager
}

// FuncFactory adapts a function to LayoutManagerFactory. Each FuncFactory is
// its own identity, even when two wrap the same function.
type FuncFactory struct {
	fn func() LayoutManager
}

// FactoryFunc returns a factory that calls fn.
func FactoryFunc(fn func() LayoutManager) *FuncFactory {
	return &FuncFactory{fn: fn}
}

// NewLayoutManager calls the wrapped function, or returns the default layout
// manager if there is none.
func (f *FuncFactory) NewLayoutManager() LayoutManager {
	if f == nil || f.fn == nil {
		return DefaultLayoutManager()
	}
	return f.fn()
}

// FaceLayoutManager measures text with a single font face.
type FaceLayoutManager struct {
	face font.Face
}

// NewFaceLayoutManager returns a layout manager that measures with face.
func NewFaceLayoutManager(face font.Face) *FaceLayoutManager {
	return &FaceLayoutManager{face: face}
}

// DefaultLayoutManager returns a layout manager backed by the fixed 7x13
// bitmap face. It is used whenever no factory is configured.
func DefaultLayoutManager() LayoutManager {
	return NewFaceLayoutManager(basicfont.Face7x13)
}

// Face returns the face used for measuring.
func (m *FaceLayoutManager) Face() font.Face {
	return m.face
}

// Measure implements LayoutManager. Lines are split on '\n'.
func (m *FaceLayoutManager) Measure(text string) graphics.Size {
	lines := strings.Split(text, "\n")
	var widest fixed.Int26_6
	for _, line := range lines {
		if w := font.MeasureString(m.face, line); w > widest {
			widest = w
		}
	}
	lineHeight := m.face.Metrics().Height
	return graphics.Size{
		Width:  fixedToFloat(widest),
		Height: fixedToFloat(lineHeight) * float64(len(lines)),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
