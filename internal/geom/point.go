// Package geom holds the unit-circle geometry used by the chart: points,
// their path-command encoding and the affine matrix that maps unit space
// onto a rendering surface.
package geom

import (
	"math"
	"strconv"
)

// Point is an immutable 2D coordinate, usually on or inside the unit circle.
type Point struct {
	X float64
	Y float64
}

// Origin is the center of the chart.
var Origin = Point{}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// UnitPointAtAngle returns the point on the unit circle at angle radians.
func UnitPointAtAngle(angle float64) Point {
	return Point{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Len returns the distance from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the polar angle of p in (-π, π].
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String implements fmt.Stringer using the path encoding.
func (p Point) String() string {
	return FormatPoint(p)
}

// FormatPoint renders p as two space separated numbers for embedding in a
// path or line command. Values use the shortest representation that round
// trips, so equal points always format identically.
func FormatPoint(p Point) string {
	return FormatNumber(p.X) + " " + FormatNumber(p.Y)
}

// FormatNumber formats a single path coordinate.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
