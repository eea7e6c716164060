// Package grid provides the discrete topology of a rectangular cell grid
// and a small closed algebra of area predicates used to select cell
// index sets.
package grid

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/roverkit/perception/internal/geom"
)

// Area is a composable predicate over 2D space. Implementations are
// immutable; composition never mutates the operands.
type Area interface {
	// Contains reports whether the point lies inside the area.
	Contains(p orb.Point) bool
}

type circleArea struct {
	center orb.Point
	radius float64
}

func (a circleArea) Contains(p orb.Point) bool {
	return planar.Distance(a.center, p) <= a.radius
}

// Circle returns the closed disc with the given center and radius.
func Circle(center orb.Point, radius float64) Area {
	return circleArea{center: center, radius: radius}
}

type notArea struct {
	inner Area
}

func (a notArea) Contains(p orb.Point) bool { return !a.inner.Contains(p) }

// Not returns the complement of the given area.
func Not(inner Area) Area { return notArea{inner: inner} }

type unionArea struct {
	children []Area
}

func (a unionArea) Contains(p orb.Point) bool {
	for _, c := range a.children {
		if c.Contains(p) {
			return true
		}
	}
	return false
}

// Union returns the area containing the points of any child area.
func Union(children ...Area) Area {
	return unionArea{children: children}
}

type intersectArea struct {
	children []Area
}

func (a intersectArea) Contains(p orb.Point) bool {
	for _, c := range a.children {
		if !c.Contains(p) {
			return false
		}
	}
	return true
}

// Intersect returns the area containing the points of every child area.
func Intersect(children ...Area) Area {
	return intersectArea{children: children}
}

type halfPlaneArea struct {
	point     orb.Point
	direction geom.Angle
}

func (a halfPlaneArea) Contains(p orb.Point) bool {
	// Cross product of the directed line with the offset: non-negative
	// when p lies on or to the right of the line.
	dx := p.X() - a.point.X()
	dy := p.Y() - a.point.Y()
	return dx*a.direction.Cos()-dy*a.direction.Sin() >= 0
}

// RightHalfPlane returns the half plane on the right of the line through
// the given point along the given compass direction, boundary included.
func RightHalfPlane(point orb.Point, direction geom.Angle) Area {
	return halfPlaneArea{point: point, direction: direction}
}

// Cone returns the angular area from the vertex between the compass
// directions direction-width and direction+width.
func Cone(vertex orb.Point, direction, width geom.Angle) Area {
	return Intersect(
		RightHalfPlane(vertex, direction.Sub(width)),
		RightHalfPlane(vertex, direction.Add(width).Opposite()),
	)
}
