// Package geom provides the geometric primitives shared by the table
// detector, the layout analyzer, and the document packager: a top-left
// origin rectangle, a classified line segment, and the unit conversions
// between points, twips, EMU, and half-points that the OOXML writer needs.
//
// Every coordinate in this module is expressed in typographic points with
// Y increasing downward. Converting from a PDF's bottom-left origin is the
// extractor's responsibility (see package extract), not this package's.
package geom

import "math"

// Rect is an axis-aligned rectangle with a top-left origin.
// Invariant: Left <= Right, Top <= Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a Rect from a top-left corner and a size, normalizing
// negative widths/heights so the invariant holds.
func NewRect(left, top, width, height float64) Rect {
	r := Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
	return r.normalized()
}

func (r Rect) normalized() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// MidX returns the horizontal midpoint.
func (r Rect) MidX() float64 { return (r.Left + r.Right) / 2 }

// MidY returns the vertical midpoint.
func (r Rect) MidY() float64 { return (r.Top + r.Bottom) / 2 }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// IsEmpty reports whether the rectangle has no extent.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Intersects reports whether r and o overlap (share positive area).
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// ContainsPoint reports whether (x, y) lies within r, inclusive of edges.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Intersection returns the overlapping region of r and o. The result is
// empty (IsEmpty() == true) when r and o do not intersect.
func (r Rect) Intersection(o Rect) Rect {
	left := math.Max(r.Left, o.Left)
	top := math.Max(r.Top, o.Top)
	right := math.Min(r.Right, o.Right)
	bottom := math.Min(r.Bottom, o.Bottom)
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Union returns the smallest rectangle enclosing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Expand returns r grown by amt on every side.
func (r Rect) Expand(amt float64) Rect {
	return Rect{Left: r.Left - amt, Top: r.Top - amt, Right: r.Right + amt, Bottom: r.Bottom + amt}
}

// HorizontalOverlapRatio returns the fraction of r's width covered by its
// horizontal overlap with o, in [0,1].
func (r Rect) HorizontalOverlapRatio(o Rect) float64 {
	if r.Width() <= 0 {
		return 0
	}
	left := math.Max(r.Left, o.Left)
	right := math.Min(r.Right, o.Right)
	if right <= left {
		return 0
	}
	return (right - left) / r.Width()
}

// OverlapAreaRatio returns the fraction of r's area covered by its
// intersection with o, in [0,1].
func (r Rect) OverlapAreaRatio(o Rect) float64 {
	if r.Area() <= 0 {
		return 0
	}
	inter := r.Intersection(o)
	if inter.IsEmpty() {
		return 0
	}
	return inter.Area() / r.Area()
}

// LineSegment is a straight stroke between two endpoints, classified as
// horizontal or vertical by the table detector.
type LineSegment struct {
	X1, Y1, X2, Y2 float64
	Thickness      float64
	ColorHex       string
}

// Orientation describes a classified line segment's axis.
type Orientation int

const (
	OrientationDiagonal Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

// Classify returns the segment's orientation: horizontal when
// |Δy| < max(|Δx|*0.1, 0.5), vertical symmetrically, otherwise diagonal
// (and discarded by the table detector).
func (l LineSegment) Classify() Orientation {
	dx := math.Abs(l.X2 - l.X1)
	dy := math.Abs(l.Y2 - l.Y1)
	if dy < math.Max(dx*0.1, 0.5) {
		return OrientationHorizontal
	}
	if dx < math.Max(dy*0.1, 0.5) {
		return OrientationVertical
	}
	return OrientationDiagonal
}

// Normalized orients the segment so the smaller coordinate comes first
// along its primary axis (X for horizontal, Y for vertical).
func (l LineSegment) Normalized() LineSegment {
	switch l.Classify() {
	case OrientationHorizontal:
		if l.X1 > l.X2 {
			l.X1, l.X2 = l.X2, l.X1
		}
		l.Y2 = l.Y1
	case OrientationVertical:
		if l.Y1 > l.Y2 {
			l.Y1, l.Y2 = l.Y2, l.Y1
		}
		l.X2 = l.X1
	}
	return l
}

// Length returns the Euclidean length of the segment.
func (l LineSegment) Length() float64 {
	dx := l.X2 - l.X1
	dy := l.Y2 - l.Y1
	return math.Hypot(dx, dy)
}

// RectangleElement is an axis-aligned filled and/or stroked rectangle
// extracted from the page, used to derive cell shading and (when thin) to
// synthesize ruling lines for producers that draw rules as filled boxes.
type RectangleElement struct {
	Bounds      Rect
	Filled      bool
	FillHex     string
	Stroked     bool
	StrokeHex   string
	StrokeWidth float64
}

// IsThinRule reports whether the rectangle is thin enough along one axis
// to be treated as a synthesized ruling line instead of a filled region.
func (re RectangleElement) IsThinRule(maxThickness float64) bool {
	w, h := re.Bounds.Width(), re.Bounds.Height()
	return (w > 0 && h > 0) && (h <= maxThickness || w <= maxThickness)
}

// AsLineSegment synthesizes a LineSegment from a thin rectangle, running
// along its longer axis.
func (re RectangleElement) AsLineSegment() LineSegment {
	b := re.Bounds
	color := re.FillHex
	if color == "" {
		color = re.StrokeHex
	}
	if b.Width() >= b.Height() {
		y := b.MidY()
		return LineSegment{X1: b.Left, Y1: y, X2: b.Right, Y2: y, Thickness: b.Height(), ColorHex: color}
	}
	x := b.MidX()
	return LineSegment{X1: x, Y1: b.Top, X2: x, Y2: b.Bottom, Thickness: b.Width(), ColorHex: color}
}
