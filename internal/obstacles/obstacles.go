// Package obstacles holds the static obstacle catalogue used by the
// synthetic sensor model. Obstacle positions are snapped to a fixed
// grid pitch so containment is an index identity test.
package obstacles

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/roverkit/perception/internal/geom"
)

// Obstacle is one snapped obstacle point. Label is empty for plain
// hindered points and carries a generated ID for labelled ones.
type Obstacle struct {
	Location orb.Point
	Label    string
}

// Labeled reports whether the obstacle carries a label.
func (o Obstacle) Labeled() bool { return o.Label != "" }

// ObstacleMap is an immutable set of snapped obstacle points.
type ObstacleMap struct {
	cells    []Obstacle
	gridSize float64
}

// NewObstacleMap snaps the given points to the grid pitch and drops
// duplicates. The builder is the richer entry point; this one covers
// plain unlabelled point sets.
func NewObstacleMap(points []orb.Point, gridSize float64) ObstacleMap {
	b := NewBuilder(gridSize)
	for _, p := range points {
		b.AddPoint(p.X(), p.Y())
	}
	return b.Build()
}

// GridSize returns the snap pitch.
func (m ObstacleMap) GridSize() float64 { return m.gridSize }

// Size returns the number of obstacles.
func (m ObstacleMap) Size() int { return len(m.cells) }

// Obstacle returns the obstacle at the given index.
func (m ObstacleMap) Obstacle(index int) Obstacle { return m.cells[index] }

// Obstacles returns a copy of the obstacle list.
func (m ObstacleMap) Obstacles() []Obstacle {
	out := make([]Obstacle, len(m.cells))
	copy(out, m.cells)
	return out
}

// Hindered returns the locations of the unlabelled obstacles.
func (m ObstacleMap) Hindered() []orb.Point {
	var out []orb.Point
	for _, c := range m.cells {
		if !c.Labeled() {
			out = append(out, c.Location)
		}
	}
	return out
}

// Labeled returns the labelled obstacles.
func (m ObstacleMap) Labeled() []Obstacle {
	var out []Obstacle
	for _, c := range m.cells {
		if c.Labeled() {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether some obstacle occupies the grid cell that
// (x, y) snaps to, i.e. lies within half a cell on both axes.
func (m ObstacleMap) Contains(x, y float64) bool {
	ix, iy := snapIndex(x, y, m.gridSize)
	for _, c := range m.cells {
		cx, cy := snapIndex(c.Location.X(), c.Location.Y(), m.gridSize)
		if cx == ix && cy == iy {
			return true
		}
	}
	return false
}

// IndexOfNearest returns the index of the nearest obstacle whose
// bearing from (x, y) lies within coneHalfAngle of direction, or -1
// when no obstacle qualifies. An obstacle exactly at (x, y) qualifies
// regardless of bearing.
func (m ObstacleMap) IndexOfNearest(x, y float64, direction, coneHalfAngle geom.Angle) int {
	from := orb.Point{x, y}
	best := -1
	bestDistance := math.MaxFloat64
	for i, c := range m.cells {
		distance := planar.Distance(from, c.Location)
		if distance > 0 {
			bearing := geom.Direction(from, c.Location)
			if !bearing.IsCloseTo(direction, coneHalfAngle) {
				continue
			}
		}
		if distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	return best
}

// NearestEcho returns the distance of the nearest in-cone obstacle
// within maxDistance. The second result is false when nothing would
// produce an echo. This is the simulator's sensor model hook.
func (m ObstacleMap) NearestEcho(position orb.Point, direction, coneHalfAngle geom.Angle, maxDistance float64) (float64, bool) {
	idx := m.IndexOfNearest(position.X(), position.Y(), direction, coneHalfAngle)
	if idx < 0 {
		return 0, false
	}
	distance := planar.Distance(position, m.cells[idx].Location)
	if distance >= maxDistance {
		return 0, false
	}
	return distance, true
}

func snapIndex(x, y, gridSize float64) (int, int) {
	return int(math.Round(x / gridSize)), int(math.Round(y / gridSize))
}

func snapPoint(x, y, gridSize float64) orb.Point {
	ix, iy := snapIndex(x, y, gridSize)
	return orb.Point{float64(ix) * gridSize, float64(iy) * gridSize}
}
