// Package geom provides the planar geometry primitives shared by the
// mapping core: compass angles with exact arithmetic and helpers for
// points, cones and grid squares.
//
// Compass convention throughout: 0 degrees points along +Y (robot
// forward), angles grow clockwise, so the X component of a unit
// direction is its sine and the Y component its cosine.
package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Angle is a direction stored as a unit (sin, cos) pair. The unit-length
// invariant is maintained by construction, which keeps addition and
// subtraction exact and free of degree-wrap bugs. The zero value is not a
// valid Angle; use Deg0 or a constructor.
type Angle struct {
	x float64 // sine component
	y float64 // cosine component
}

// Cardinal angles with exact components.
var (
	Deg0   = Angle{0, 1}
	Deg90  = Angle{1, 0}
	Deg180 = Angle{0, -1}
	Deg270 = Angle{-1, 0}
)

// FromDeg returns the angle for the given compass degrees.
func FromDeg(deg float64) Angle {
	return FromRad(deg * math.Pi / 180)
}

// FromRad returns the angle for the given compass radians.
// Cardinal values are snapped to their exact representation.
func FromRad(rad float64) Angle {
	switch {
	case rad == 0:
		return Deg0
	case rad == math.Pi || rad == -math.Pi:
		return Deg180
	case rad == math.Pi/2:
		return Deg90
	case rad == -math.Pi/2:
		return Deg270
	}
	return Angle{math.Sin(rad), math.Cos(rad)}
}

// FromVector returns the direction of the vector (x, y), snapping
// axis-aligned vectors to the exact cardinal angles. The zero vector
// maps to Deg0.
func FromVector(x, y float64) Angle {
	if x == 0 {
		if y >= 0 {
			return Deg0
		}
		return Deg180
	}
	if y == 0 {
		if x > 0 {
			return Deg90
		}
		return Deg270
	}
	length := math.Hypot(x, y)
	return Angle{x / length, y / length}
}

// Direction returns the compass direction of the segment from a to b.
func Direction(from, to orb.Point) Angle {
	return FromVector(to.X()-from.X(), to.Y()-from.Y())
}

// Sin returns the sine of the angle (X component of the unit direction).
func (a Angle) Sin() float64 { return a.x }

// Cos returns the cosine of the angle (Y component of the unit direction).
func (a Angle) Cos() float64 { return a.y }

// Tan returns the tangent of the angle.
func (a Angle) Tan() float64 { return a.x / a.y }

// Add returns a + b.
func (a Angle) Add(b Angle) Angle {
	return Angle{a.x*b.y + a.y*b.x, a.y*b.y - a.x*b.x}
}

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle {
	return Angle{a.x*b.y - a.y*b.x, a.y*b.y + a.x*b.x}
}

// Neg returns the mirrored angle (-a).
func (a Angle) Neg() Angle { return Angle{-a.x, a.y} }

// Opposite returns the angle rotated by 180 degrees.
func (a Angle) Opposite() Angle { return Angle{-a.x, -a.y} }

// Mul returns the angle scaled by the given factor.
func (a Angle) Mul(scale float64) Angle { return FromRad(a.ToRad() * scale) }

// Positive reports whether the angle is in (0, 180) degrees.
func (a Angle) Positive() bool { return a.x > 0 }

// Negative reports whether the angle is in [-180, 0) degrees.
func (a Angle) Negative() bool { return a.x < 0 || a.x == 0 && a.y < 0 }

// IsFront reports whether the angle is within the arc around zero whose
// half-width has the given sine. Used for containment-in-arc tests:
// b.Sub(a).IsFront(sinEps) is true when b lies within the arc a +- eps.
func (a Angle) IsFront(sinEps float64) bool {
	return a.y > 0 && math.Abs(a.x) <= sinEps
}

// IsCloseTo reports whether the angle lies within eps of other.
func (a Angle) IsCloseTo(other, eps Angle) bool {
	return a.Sub(other).IsFront(eps.x)
}

// ToRad returns the compass radians in [-pi, pi).
func (a Angle) ToRad() float64 {
	if a.x == 0 {
		if a.y >= 0 {
			return 0
		}
		return -math.Pi
	}
	return math.Atan2(a.x, a.y)
}

// ToDeg returns the compass degrees in [-180, 180).
func (a Angle) ToDeg() float64 { return a.ToRad() * 180 / math.Pi }

// ToIntDeg returns the rounded compass degrees in [-180, 180).
func (a Angle) ToIntDeg() int {
	deg := int(math.Round(a.ToDeg()))
	if deg >= 180 {
		deg -= 360
	}
	return deg
}

// Equal reports whether the two angles observe the same integer degree
// count.
func (a Angle) Equal(b Angle) bool { return a.ToIntDeg() == b.ToIntDeg() }

// At returns the point at the given distance from center along the angle.
func (a Angle) At(center orb.Point, distance float64) orb.Point {
	return orb.Point{
		center.X() + distance*a.x,
		center.Y() + distance*a.y,
	}
}

func (a Angle) String() string {
	return fmt.Sprintf("Angle(%v)", a.ToDeg())
}

// NormRad normalizes compass radians into [-pi, pi).
func NormRad(rad float64) float64 {
	for rad < -math.Pi {
		rad += 2 * math.Pi
	}
	for rad >= math.Pi {
		rad -= 2 * math.Pi
	}
	return rad
}

// NormDeg normalizes compass degrees into [-180, 180).
func NormDeg(deg float64) float64 {
	for deg < -180 {
		deg += 360
	}
	for deg >= 180 {
		deg -= 360
	}
	return deg
}
