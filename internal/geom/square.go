package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Tolerances for degenerate cone geometry: segments closer than half a
// millimetre to the viewpoint and directions within half a degree of a
// segment axis are treated as coincident.
const (
	halfMM  = 500e-6
	halfDeg = math.Pi / 360
)

// horizontalArcIntersect returns the [xLeft, xRight] intersection of the
// line y = y0 with the cone from q in the compass directions
// alpha +- dAlpha (radians). Infinite bounds mean the cone leg never
// crosses the line on that side.
func horizontalArcIntersect(q orb.Point, y, alpha, dAlpha float64) (float64, float64) {
	xq := q.X()
	yq := q.Y()
	if math.Abs(y-yq) <= halfMM {
		if math.Abs(NormRad(math.Pi/2-alpha)) <= dAlpha+halfDeg {
			return xq, math.Inf(1)
		}
		if math.Abs(NormRad(-math.Pi/2-alpha)) <= dAlpha+halfDeg {
			return math.Inf(-1), xq
		}
		return xq, xq
	}
	al := NormRad(alpha - dAlpha)
	ar := NormRad(alpha + dAlpha)
	v := (y-yq)*math.Tan(al) + xq
	v1 := (y-yq)*math.Tan(ar) + xq
	var xl, xr float64
	if y > yq {
		xl = math.Inf(-1)
		if al > -math.Pi/2 && al < math.Pi/2 {
			xl = v
		}
		xr = math.Inf(1)
		if ar > -math.Pi/2 && ar < math.Pi/2 {
			xr = v1
		}
	} else {
		xl = v1
		if ar >= -math.Pi/2 && ar <= math.Pi/2 {
			xl = math.Inf(-1)
		}
		xr = v
		if al >= -math.Pi/2 && al <= math.Pi/2 {
			xr = math.Inf(1)
		}
	}
	return xl, xr
}

// horizontalArcInterval returns the nearest and farthest points of the
// horizontal segment (xl,y)-(xr,y) seen from q within the cone
// alpha +- dAlpha.
func horizontalArcInterval(q orb.Point, xl, xr, y, alpha, dAlpha float64) (orb.Point, orb.Point, bool) {
	x0l, x0r := horizontalArcIntersect(q, y, alpha, dAlpha)
	if math.IsInf(x0l, -1) && math.IsInf(x0r, 1) {
		return orb.Point{}, orb.Point{}, false
	}
	x1l := math.Max(xl, x0l)
	x1r := math.Min(xr, x0r)
	if x1l > x1r {
		return orb.Point{}, orb.Point{}, false
	}
	xm := (x1l + x1r) / 2
	xq := q.X()
	var nearest orb.Point
	switch {
	case xq <= x1l:
		nearest = orb.Point{x1l, y}
	case xq <= x1r:
		nearest = orb.Point{xq, y}
	default:
		nearest = orb.Point{x1r, y}
	}
	farthest := orb.Point{x1l, y}
	if xq < xm {
		farthest = orb.Point{x1r, y}
	}
	return nearest, farthest, true
}

// verticalArcIntersect returns the [yRear, yFront] intersection of the
// line x = x0 with the cone from q in the compass directions
// alpha +- dAlpha (radians).
func verticalArcIntersect(q orb.Point, x, alpha, dAlpha float64) (float64, float64) {
	xq := q.X()
	yq := q.Y()
	if math.Abs(x-xq) < halfMM {
		if math.Abs(alpha) <= dAlpha+halfDeg {
			return yq, math.Inf(1)
		}
		if math.Abs(NormRad(-math.Pi-alpha)) <= dAlpha+halfDeg {
			return math.Inf(-1), yq
		}
		return yq, yq
	}
	al := NormRad(alpha - dAlpha)
	ar := NormRad(alpha + dAlpha)
	v := (x-xq)*math.Tan(math.Pi/2-ar) + yq
	v1 := (x-xq)*math.Tan(math.Pi/2-al) + yq
	var yr, yf float64
	if x > xq {
		yr = v
		if ar <= 0 {
			yr = math.Inf(-1)
		}
		yf = v1
		if al <= 0 {
			yf = math.Inf(1)
		}
	} else {
		yr = math.Inf(-1)
		if al < 0 && al > -math.Pi {
			yr = v1
		}
		yf = math.Inf(1)
		if ar < 0 && ar > -math.Pi {
			yf = v
		}
	}
	return yr, yf
}

// verticalArcInterval returns the nearest and farthest points of the
// vertical segment (x,yr)-(x,yf) seen from q within the cone
// alpha +- dAlpha.
func verticalArcInterval(q orb.Point, yr, yf, x, alpha, dAlpha float64) (orb.Point, orb.Point, bool) {
	y0r, y0f := verticalArcIntersect(q, x, alpha, dAlpha)
	if math.IsInf(y0r, -1) && math.IsInf(y0f, 1) {
		return orb.Point{}, orb.Point{}, false
	}
	y1r := math.Max(yr, y0r)
	y1f := math.Min(yf, y0f)
	if y1r > y1f {
		return orb.Point{}, orb.Point{}, false
	}
	ym := (y1r + y1f) / 2
	yq := q.Y()
	var nearest orb.Point
	switch {
	case yq <= y1r:
		nearest = orb.Point{x, y1r}
	case yq <= y1f:
		nearest = orb.Point{x, yq}
	default:
		nearest = orb.Point{x, y1f}
	}
	farthest := orb.Point{x, y1r}
	if yq < ym {
		farthest = orb.Point{x, y1f}
	}
	return nearest, farthest, true
}

// SquareArcInterval returns the nearest and farthest points of the
// axis-aligned square centred at p with the given side that are visible
// from q within the cone direction +- halfWidth. ok is false when the
// cone misses the square entirely. A viewpoint inside the square is its
// own nearest point.
func SquareArcInterval(p orb.Point, size float64, q orb.Point, direction, halfWidth Angle) (nearest, farthest orb.Point, ok bool) {
	alpha := direction.ToRad()
	dAlpha := math.Abs(halfWidth.ToRad())
	xl := p.X() - size/2
	xr := p.X() + size/2
	yr := p.Y() - size/2
	yf := p.Y() + size/2

	type interval struct {
		near, far orb.Point
	}
	var hits []interval
	if n, f, found := verticalArcInterval(q, yr, yf, xl, alpha, dAlpha); found {
		hits = append(hits, interval{n, f})
	}
	if n, f, found := verticalArcInterval(q, yr, yf, xr, alpha, dAlpha); found {
		hits = append(hits, interval{n, f})
	}
	if n, f, found := horizontalArcInterval(q, xl, xr, yr, alpha, dAlpha); found {
		hits = append(hits, interval{n, f})
	}
	if n, f, found := horizontalArcInterval(q, xl, xr, yf, alpha, dAlpha); found {
		hits = append(hits, interval{n, f})
	}
	if len(hits) == 0 {
		return orb.Point{}, orb.Point{}, false
	}

	inside := q.X() >= xl && q.X() <= xr && q.Y() >= yr && q.Y() <= yf
	if inside {
		nearest = q
	} else {
		nearest = hits[0].near
		for _, h := range hits[1:] {
			if distanceSq(q, h.near) < distanceSq(q, nearest) {
				nearest = h.near
			}
		}
	}
	farthest = hits[0].far
	for _, h := range hits[1:] {
		if distanceSq(q, h.far) > distanceSq(q, farthest) {
			farthest = h.far
		}
	}
	return nearest, farthest, true
}

func distanceSq(a, b orb.Point) float64 {
	dx := a.X() - b.X()
	dy := a.Y() - b.Y()
	return dx*dx + dy*dy
}
