package graphics

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Draw line to point (x, y)
	PathOpQuadTo                // Draw quadratic curve to (x2, y2) via control (x1, y1)
	PathOpCubicTo               // Draw cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpQuadTo:
		return "quad_to"
	case PathOpCubicTo:
		return "cubic_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathFillRule determines how path interiors are calculated for filling.
type PathFillRule int

const (
	// FillRuleNonZero fills regions with nonzero winding count.
	FillRuleNonZero PathFillRule = iota

	// FillRuleEvenOdd fills regions crossed an odd number of times.
	// Useful for creating holes: nested shapes alternate between filled/unfilled.
	FillRuleEvenOdd
)

// String returns a human-readable representation of the path fill rule.
func (r PathFillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "nonzero"
	case FillRuleEvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("PathFillRule(%d)", int(r))
	}
}

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp    // The operation type
	Args []float64 // Coordinates: MoveTo/LineTo=[x,y], QuadTo=[x1,y1,x2,y2], CubicTo=[x1,y1,x2,y2,x3,y3]
}

// Path represents a vector path. Closed paths are used as exclusion regions
// that laid-out text flows around.
type Path struct {
	Commands []PathCommand
	FillRule PathFillRule
}

// NewPath creates a new empty path with nonzero fill rule.
func NewPath() *Path {
	return &Path{FillRule: FillRuleNonZero}
}

// NewRectPath returns a closed rectangular path.
func NewRectPath(r Rect) *Path {
	p := NewPath()
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right, r.Top)
	p.LineTo(r.Right, r.Bottom)
	p.LineTo(r.Left, r.Bottom)
	p.Close()
	return p
}

// kappa is the cubic control point distance for a quarter ellipse.
const kappa = 0.5522847498

// NewOvalPath returns a closed ellipse inscribed in r, built from four cubics.
func NewOvalPath(r Rect) *Path {
	cx, cy := (r.Left+r.Right)*0.5, (r.Top+r.Bottom)*0.5
	rx, ry := r.Width()*0.5, r.Height()*0.5
	ox, oy := rx*kappa, ry*kappa

	p := NewPath()
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
	return p
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpMoveTo,
		Args: []float64{x, y},
	})
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpLineTo,
		Args: []float64{x, y},
	})
}

// QuadTo adds a quadratic bezier curve from the current point to (x2, y2)
// with control point (x1, y1).
func (p *Path) QuadTo(x1, y1, x2, y2 float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpQuadTo,
		Args: []float64{x1, y1, x2, y2},
	})
}

// CubicTo adds a cubic bezier curve from the current point to (x3, y3)
// with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpCubicTo,
		Args: []float64{x1, y1, x2, y2, x3, y3},
	})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{
		Op: PathOpClose,
	})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// IsClosed reports whether the last subpath ends with a close command.
func (p *Path) IsClosed() bool {
	n := len(p.Commands)
	return n > 0 && p.Commands[n-1].Op == PathOpClose
}

// Bounds returns the bounding box of every point in the path, control points
// included. An empty path has empty bounds.
func (p *Path) Bounds() Rect {
	var (
		r     Rect
		found bool
	)
	for _, cmd := range p.Commands {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			pt := Rect{Left: cmd.Args[i], Top: cmd.Args[i+1], Right: cmd.Args[i], Bottom: cmd.Args[i+1]}
			if !found {
				r, found = pt, true
				continue
			}
			r = r.Union(pt)
		}
	}
	return r
}

// Clone returns a deep copy of the path. Command argument slices are not
// shared with the receiver.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	out := &Path{FillRule: p.FillRule}
	if p.Commands != nil {
		out.Commands = make([]PathCommand, len(p.Commands))
		for i, cmd := range p.Commands {
			out.Commands[i] = PathCommand{Op: cmd.Op}
			if cmd.Args != nil {
				out.Commands[i].Args = append([]float64(nil), cmd.Args...)
			}
		}
	}
	return out
}

// Equal reports whether two paths have the same fill rule and commands.
// Two nil paths are equal.
func (p *Path) Equal(other *Path) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	if p.FillRule != other.FillRule || len(p.Commands) != len(other.Commands) {
		return false
	}
	for i, cmd := range p.Commands {
		o := other.Commands[i]
		if cmd.Op != o.Op || len(cmd.Args) != len(o.Args) {
			return false
		}
		for j, v := range cmd.Args {
			if v != o.Args[j] {
				return false
			}
		}
	}
	return true
}

// AppendHash appends a canonical encoding of the path to b, suitable for
// feeding a hash. Paths that are Equal produce identical bytes.
func (p *Path) AppendHash(b []byte) []byte {
	if p == nil {
		return append(b, 0)
	}
	b = append(b, 1, byte(p.FillRule))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.Commands)))
	for _, cmd := range p.Commands {
		b = append(b, byte(cmd.Op), byte(len(cmd.Args)))
		for _, v := range cmd.Args {
			b = binary.LittleEndian.AppendUint64(b, FloatBits(v))
		}
	}
	return b
}

// FloatBits returns the IEEE 754 bits of v with negative zero folded into
// positive zero, so values that compare equal share the same bits.
func FloatBits(v float64) uint64 {
	if v == 0 {
		return 0
	}
	return math.Float64bits(v)
}
