package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// ErrInvalidConfig is the class of fatal construction errors: the core
// fails fast on non-positive dimensions and never raises anything else.
var ErrInvalidConfig = errors.New("invalid configuration")

// Topology maps between the linear cell indices of a rectangular grid
// and 2D coordinates. It is an immutable value: derived maps reference a
// topology, never mutate it. The grid is centred so that Center is the
// coordinate of the middle cell (or the nearest grid line for even
// dimensions). Valid indices are 0 <= i < Width*Height, row-major from
// the bottom-left cell.
type Topology struct {
	center   orb.Point
	width    int
	height   int
	gridSize float64
}

// NewTopology returns the topology for a width x height grid of
// gridSize-sided cells centred at center. It fails with ErrInvalidConfig
// on non-positive dimensions.
func NewTopology(center orb.Point, width, height int, gridSize float64) (Topology, error) {
	if width <= 0 {
		return Topology{}, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, width)
	}
	if height <= 0 {
		return Topology{}, fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, height)
	}
	if gridSize <= 0 {
		return Topology{}, fmt.Errorf("%w: grid size must be positive, got %v", ErrInvalidConfig, gridSize)
	}
	return Topology{center: center, width: width, height: height, gridSize: gridSize}, nil
}

// MustTopology is NewTopology that panics on error. Intended for tests
// and literals that have already been validated.
func MustTopology(center orb.Point, width, height int, gridSize float64) Topology {
	t, err := NewTopology(center, width, height, gridSize)
	if err != nil {
		panic(err)
	}
	return t
}

// Center returns the grid center coordinate.
func (t Topology) Center() orb.Point { return t.center }

// Width returns the number of horizontal cells.
func (t Topology) Width() int { return t.width }

// Height returns the number of vertical cells.
func (t Topology) Height() int { return t.height }

// GridSize returns the cell side (m).
func (t Topology) GridSize() float64 { return t.gridSize }

// Size returns the number of cells.
func (t Topology) Size() int { return t.width * t.height }

// origin returns the coordinate of cell 0 (bottom-left cell center).
func (t Topology) origin() (float64, float64) {
	x0 := t.center.X() - float64(t.width-1)*t.gridSize/2
	y0 := t.center.Y() - float64(t.height-1)*t.gridSize/2
	return x0, y0
}

// IndexOf returns the linear index of the cell containing (x, y), or -1
// when the point is out of the grid bounds. Ties round half away from
// zero on each axis.
func (t Topology) IndexOf(x, y float64) int {
	x0, y0 := t.origin()
	col := int(math.Round((x - x0) / t.gridSize))
	row := int(math.Round((y - y0) / t.gridSize))
	if col < 0 || col >= t.width || row < 0 || row >= t.height {
		return -1
	}
	return row*t.width + col
}

// IndexOfPoint returns the linear index of the cell containing p, or -1.
func (t Topology) IndexOfPoint(p orb.Point) int {
	return t.IndexOf(p.X(), p.Y())
}

// Location returns the center coordinate of the cell at the given index.
// ok is false for out-of-range indices.
func (t Topology) Location(index int) (orb.Point, bool) {
	if index < 0 || index >= t.Size() {
		return orb.Point{}, false
	}
	x0, y0 := t.origin()
	col := index % t.width
	row := index / t.width
	return orb.Point{
		x0 + float64(col)*t.gridSize,
		y0 + float64(row)*t.gridSize,
	}, true
}

// Snap returns the grid cell center nearest to p, or ok=false when p is
// outside the grid bounds.
func (t Topology) Snap(p orb.Point) (orb.Point, bool) {
	idx := t.IndexOfPoint(p)
	if idx < 0 {
		return orb.Point{}, false
	}
	return t.Location(idx)
}

// Bound returns the rectangle covered by the grid cells, cell borders
// included.
func (t Topology) Bound() orb.Bound {
	x0, y0 := t.origin()
	half := t.gridSize / 2
	return orb.Bound{
		Min: orb.Point{x0 - half, y0 - half},
		Max: orb.Point{
			x0 + float64(t.width-1)*t.gridSize + half,
			y0 + float64(t.height-1)*t.gridSize + half,
		},
	}
}

// IndicesByArea returns the indices of every cell whose center lies in
// the area, in ascending order.
func (t Topology) IndicesByArea(area Area) []int {
	var indices []int
	n := t.Size()
	for i := 0; i < n; i++ {
		p, _ := t.Location(i)
		if area.Contains(p) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Contour returns the boundary of the given region: the indices in the
// set that have at least one 4-connected neighbour (up, down, left,
// right) missing from the set. Neighbours outside the grid count as
// missing. The result is in ascending order; callers comparing contours
// should compare as sets.
func (t Topology) Contour(indices []int) []int {
	members := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < t.Size() {
			members[i] = struct{}{}
		}
	}
	var contour []int
	for i := range members {
		col := i % t.width
		row := i / t.width
		if t.isBoundary(members, col, row) {
			contour = append(contour, i)
		}
	}
	sort.Ints(contour)
	return contour
}

func (t Topology) isBoundary(members map[int]struct{}, col, row int) bool {
	neighbours := [4][2]int{
		{col, row + 1},
		{col, row - 1},
		{col - 1, row},
		{col + 1, row},
	}
	for _, n := range neighbours {
		nc, nr := n[0], n[1]
		if nc < 0 || nc >= t.width || nr < 0 || nr >= t.height {
			return true
		}
		if _, in := members[nr*t.width+nc]; !in {
			return true
		}
	}
	return false
}
