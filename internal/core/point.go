package core

import "math"

// Integer is the set of integer coordinate types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of floating-point coordinate types.
type Float interface {
	~float32 | ~float64
}

// Number is any coordinate type a Point can carry.
type Number interface {
	Integer | Float
}

// Point is a 2D coordinate. Integer points address grid cells (walls,
// collectibles); float points carry continuous motion (player, enemies).
type Point[T Number] struct {
	X T `json:"x" yaml:"x"`
	Y T `json:"y" yaml:"y"`
}

// Pt creates a point.
func Pt[T Number](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// Add returns p + q.
func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point[T]) Sub(q Point[T]) Point[T] {
	return Point[T]{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both components by s.
func (p Point[T]) Scale(s T) Point[T] {
	return Point[T]{X: p.X * s, Y: p.Y * s}
}

// IsZero reports whether both components are zero.
func (p Point[T]) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Length returns the Euclidean length of p.
func Length[F Float](p Point[F]) F {
	return F(math.Hypot(float64(p.X), float64(p.Y)))
}

// Distance returns the Euclidean distance between p and q.
func Distance[F Float](p, q Point[F]) F {
	return Length(p.Sub(q))
}

// Rotate rotates p by angle radians. On screen coordinates (y grows down)
// a positive angle turns clockwise.
func Rotate[F Float](p Point[F], angle float64) Point[F] {
	sin, cos := math.Sincos(angle)
	x, y := float64(p.X), float64(p.Y)
	return Point[F]{
		X: F(x*cos - y*sin),
		Y: F(x*sin + y*cos),
	}
}

// Normalize scales p to unit length. A zero-length vector has no
// direction and normalizes to the zero vector.
func Normalize[F Float](p Point[F]) Point[F] {
	l := Length(p)
	if l == 0 {
		return Point[F]{}
	}
	return Point[F]{X: p.X / l, Y: p.Y / l}
}

// Round rounds both components to the nearest integer, halves away from zero.
func Round[F Float](p Point[F]) Point[F] {
	return Point[F]{
		X: F(math.Round(float64(p.X))),
		Y: F(math.Round(float64(p.Y))),
	}
}

// Convert changes the coordinate type. Float to integer truncates toward
// zero, so round first when the nearest cell is wanted.
func Convert[To, From Number](p Point[From]) Point[To] {
	return Point[To]{X: To(p.X), Y: To(p.Y)}
}

// CellOf returns the grid cell a continuous position rounds to.
func CellOf[F Float](p Point[F]) Point[int] {
	return Convert[int](Round(p))
}
