package mapper

import (
	"github.com/paulmach/orb"

	"github.com/roverkit/perception/internal/geom"
	"github.com/roverkit/perception/internal/grid"
)

// GridMap is a fixed-size robot-centric re-sampling of a RadarMap,
// re-oriented so that "up" in the map matches the robot heading in the
// source frame. Cell coordinates are map-local (the map center is the
// local origin).
type GridMap struct {
	topology  grid.Topology
	cells     []Cell
	center    orb.Point  // world coordinate of the map center
	direction geom.Angle // world heading of the map "up" axis
}

// BuildGridMap samples a size x size robot-centric view of the radar
// map. The center is snapped to the source topology and the heading is
// quantized to the nearest cardinal angle: only 0/90/180/270 degree
// re-orientations are exercised, so nearest-cell sampling stays exact.
// Destination cells falling outside the source grid are unknown.
func BuildGridMap(radar RadarMap, center orb.Point, direction geom.Angle, size int) (GridMap, error) {
	source := radar.Topology()
	mapCenter, ok := source.Snap(center)
	if !ok {
		mapCenter = center
	}
	topology, err := grid.NewTopology(orb.Point{}, size, size, source.GridSize())
	if err != nil {
		return GridMap{}, err
	}
	heading := quantizeCardinal(direction)
	cells := make([]Cell, topology.Size())
	for i := range cells {
		local, _ := topology.Location(i)
		world := rotateToWorld(local, heading, mapCenter)
		if idx := source.IndexOfPoint(world); idx >= 0 {
			cells[i] = radar.Cell(idx).WithLocation(local)
		} else {
			cells[i] = UnknownCell(local)
		}
	}
	return GridMap{
		topology:  topology,
		cells:     cells,
		center:    mapCenter,
		direction: heading,
	}, nil
}

// Topology returns the map-local grid topology.
func (g GridMap) Topology() grid.Topology { return g.topology }

// Center returns the world coordinate of the map center.
func (g GridMap) Center() orb.Point { return g.center }

// Direction returns the world heading the map is oriented to.
func (g GridMap) Direction() geom.Angle { return g.direction }

// Size returns the number of cells.
func (g GridMap) Size() int { return len(g.cells) }

// Cell returns the cell at the given index. The index must be valid.
func (g GridMap) Cell(index int) Cell { return g.cells[index] }

// CellAt returns the cell containing the map-local point (x, y); ok is
// false outside the map.
func (g GridMap) CellAt(x, y float64) (Cell, bool) {
	idx := g.topology.IndexOf(x, y)
	if idx < 0 {
		return Cell{}, false
	}
	return g.cells[idx], true
}

// Cells returns a copy of the cell array in index order.
func (g GridMap) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}
