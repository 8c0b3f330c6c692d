// Package grid implements the interaction engine behind a canvas-rendered
// spreadsheet grid: mapping pointer pixels to logical cells and back,
// selection and keyboard navigation, fill-handle drags, clipboard import
// and export, and row/column resizing. Rendering, event wiring and data
// persistence stay with the host; the engine talks to them through the
// DataSource interface and outbound callbacks.
package grid

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Rect represents a pixel-space rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// NoCell is the index reported when a pixel point does not resolve to any
// visible or frozen cell. Callers must handle it; it is not an error.
const NoCell = -1

// CellRect is a rectangle in logical cell coordinates. The corners are
// stored as given: X1 > X2 or Y1 > Y2 is legal and meaningful, because the
// sign encodes which corner is the anchor and which is active. Consumers
// normalize with Normalized at the point of use, never in storage.
type CellRect struct {
	X1, Y1 int
	X2, Y2 int
}

// Normalized returns the rectangle with X1 <= X2 and Y1 <= Y2.
func (c CellRect) Normalized() CellRect {
	if c.X1 > c.X2 {
		c.X1, c.X2 = c.X2, c.X1
	}
	if c.Y1 > c.Y2 {
		c.Y1, c.Y2 = c.Y2, c.Y1
	}
	return c
}

// Cols returns the number of columns the normalized rectangle spans.
func (c CellRect) Cols() int {
	n := c.Normalized()
	return n.X2 - n.X1 + 1
}

// Rows returns the number of rows the normalized rectangle spans.
func (c CellRect) Rows() int {
	n := c.Normalized()
	return n.Y2 - n.Y1 + 1
}

// ContainsCell returns true if the logical cell lies inside the rectangle.
func (c CellRect) ContainsCell(x, y int) bool {
	n := c.Normalized()
	return x >= n.X1 && x <= n.X2 && y >= n.Y1 && y <= n.Y2
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
