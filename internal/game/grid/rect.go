package grid

// Point is a grid coordinate. X grows rightward, Y grows downward.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle described by its origin and size.
// The covered cells are [X, X+W) x [Y, Y+H).
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Center returns the rectangle's center cell.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects reports whether r and other share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// In reports whether r lies entirely inside outer.
func (r Rect) In(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// Shrink returns r inset by n cells on every side.
//
// Precondition: r must be at least 2n+1 wide and tall for a meaningful result.
func (r Rect) Shrink(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}
