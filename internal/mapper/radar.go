package mapper

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/roverkit/perception/internal/geom"
	"github.com/roverkit/perception/internal/grid"
)

// SensorSignal is one range reading as delivered by the telemetry
// collaborator: where the sensor was, where it pointed, what it measured
// and when.
type SensorSignal struct {
	SensorPosition orb.Point
	Direction      geom.Angle
	EchoDistance   float64 // measured distance (m); zero means no echo
	Timestamp      int64   // ms
}

// IsEcho reports whether the signal carries an obstacle echo within the
// given range limit.
func (s SensorSignal) IsEcho(maxDistance float64) bool {
	return s.EchoDistance > 0 && s.EchoDistance < maxDistance
}

// RadarMap is the persistent occupancy store: a grid topology, one Cell
// per grid index and the scalar decay parameters. It is immutable; every
// update returns a new map sharing the untouched cells' values.
type RadarMap struct {
	topology       grid.Topology
	cells          []Cell
	receptiveAngle geom.Angle
	maxDistance    float64
	echoHalfLife   float64 // ms
	maxCellAge     int64   // ms
	cleanInterval  int64   // ms
	cleanTimestamp int64   // next scheduled clean (ms)
	cleanContacts  bool
}

// NewRadarMap returns the all-unknown radar map centred at the given
// point with the validated configuration.
func NewRadarMap(cfg Config, center orb.Point) (RadarMap, error) {
	if err := cfg.Validate(); err != nil {
		return RadarMap{}, err
	}
	topology, err := grid.NewTopology(center, cfg.Width, cfg.Height, cfg.GridSize)
	if err != nil {
		return RadarMap{}, err
	}
	cells := make([]Cell, topology.Size())
	for i := range cells {
		location, _ := topology.Location(i)
		cells[i] = UnknownCell(location)
	}
	return RadarMap{
		topology:       topology,
		cells:          cells,
		receptiveAngle: geom.FromDeg(cfg.ReceptiveAngleDeg),
		maxDistance:    cfg.MaxRadarDistance,
		echoHalfLife:   float64(cfg.EchoHalfLifeMillis),
		maxCellAge:     cfg.MaxCellAgeMillis,
		cleanInterval:  cfg.CleanIntervalMillis,
		cleanContacts:  cfg.CleanContacts,
	}, nil
}

// Topology returns the grid topology of the map.
func (m RadarMap) Topology() grid.Topology { return m.topology }

// Size returns the number of cells.
func (m RadarMap) Size() int { return len(m.cells) }

// Cell returns the cell at the given index. The index must be valid.
func (m RadarMap) Cell(index int) Cell { return m.cells[index] }

// CellAt returns the cell containing (x, y); ok is false when the point
// is outside the grid.
func (m RadarMap) CellAt(x, y float64) (Cell, bool) {
	idx := m.topology.IndexOf(x, y)
	if idx < 0 {
		return Cell{}, false
	}
	return m.cells[idx], true
}

// Cells returns a copy of the cell array in index order. It exposes the
// complete cell state for external collaborators (rendering,
// persistence) without sharing the internal array.
func (m RadarMap) Cells() []Cell {
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// MaxRadarDistance returns the echo range limit (m).
func (m RadarMap) MaxRadarDistance() float64 { return m.maxDistance }

// CleanTimestamp returns the next scheduled cleanup instant (ms).
func (m RadarMap) CleanTimestamp() int64 { return m.cleanTimestamp }

// withCells returns the map with the given cell array.
func (m RadarMap) withCells(cells []Cell) RadarMap {
	m.cells = cells
	return m
}

// Map returns the map with every cell transformed by f.
func (m RadarMap) Map(f func(Cell) Cell) RadarMap {
	cells := make([]Cell, len(m.cells))
	for i, c := range m.cells {
		cells[i] = f(c)
	}
	return m.withCells(cells)
}

// MapIndexed returns the map with every cell transformed by f(index, cell).
func (m RadarMap) MapIndexed(f func(int, Cell) Cell) RadarMap {
	cells := make([]Cell, len(m.cells))
	for i, c := range m.cells {
		cells[i] = f(i, c)
	}
	return m.withCells(cells)
}

// UpdateCell returns the map with the single cell at index transformed
// by f. Out-of-range indices are a no-op.
func (m RadarMap) UpdateCell(index int, f func(Cell) Cell) RadarMap {
	if index < 0 || index >= len(m.cells) {
		return m
	}
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	cells[index] = f(cells[index])
	return m.withCells(cells)
}

// Update ingests one sensor signal. Cells whose center lies within the
// receptive cone and closer than the echo (or the range limit when no
// echo returned) collect anechoic evidence; on an echo, the cell nearest
// the echo point collects echogenic evidence. Contact cells are never
// modified by echo evidence.
//
// Malformed signal policy: a negative distance is ignored outright; a
// zero distance or one at or beyond the range limit is treated as "no
// echo within range".
func (m RadarMap) Update(signal SensorSignal) RadarMap {
	if signal.EchoDistance < 0 {
		return m
	}
	echo := signal.IsEcho(m.maxDistance)

	// Cells closer to the sensor than one grid step carry no usable
	// echo information.
	minDistance := m.topology.GridSize()
	freeLimit := m.maxDistance
	if echo {
		freeLimit = signal.EchoDistance - m.topology.GridSize()/2
	}
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	for i, c := range cells {
		if c.Contact {
			continue
		}
		distance := planar.Distance(signal.SensorPosition, c.Location)
		if distance < minDistance || distance >= freeLimit {
			continue
		}
		bearing := geom.Direction(signal.SensorPosition, c.Location)
		if !bearing.IsCloseTo(signal.Direction, m.receptiveAngle) {
			continue
		}
		cells[i] = c.AddAnechoic(signal.Timestamp, m.echoHalfLife)
	}
	if echo {
		echoPoint := signal.Direction.At(signal.SensorPosition, signal.EchoDistance)
		if idx := m.topology.IndexOfPoint(echoPoint); idx >= 0 && !cells[idx].Contact {
			cells[idx] = cells[idx].AddEchogenic(signal.Timestamp, m.echoHalfLife)
		}
	}
	return m.withCells(cells)
}

// SetContactsAt marks every cell whose center lies within radius of the
// given point as touched by a contact sensor at the given instant.
func (m RadarMap) SetContactsAt(point orb.Point, radius float64, timestamp int64) RadarMap {
	return m.Map(func(c Cell) Cell {
		if planar.Distance(c.Location, point) <= radius {
			return c.SetContact(timestamp)
		}
		return c
	})
}

// Clean expires stale evidence. The sweep is amortized: it runs only
// when the given instant has reached the scheduled cleanup time, and
// reschedules itself one clean interval later.
func (m RadarMap) Clean(timestamp int64) RadarMap {
	if timestamp < m.cleanTimestamp {
		return m
	}
	next := m.Map(func(c Cell) Cell {
		return c.Clean(timestamp, m.maxCellAge, m.cleanContacts)
	})
	next.cleanTimestamp = timestamp + m.cleanInterval
	return next
}

// Merge fuses another map into this one. Each non-unknown source cell
// location is rotated by rotation around the source origin, translated
// to the given origin point, and overwrites the nearest destination
// cell. Transforms landing outside the destination grid are dropped:
// partial observations are expected, not failures.
func (m RadarMap) Merge(source RadarMap, origin orb.Point, rotation geom.Angle) RadarMap {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	sin := rotation.Sin()
	cos := rotation.Cos()
	for _, sc := range source.cells {
		if sc.Unknown() {
			continue
		}
		x := sc.Location.X()
		y := sc.Location.Y()
		target := orb.Point{
			origin.X() + x*cos + y*sin,
			origin.Y() - x*sin + y*cos,
		}
		idx := m.topology.IndexOfPoint(target)
		if idx < 0 {
			continue
		}
		location, _ := m.topology.Location(idx)
		cells[idx] = sc.WithLocation(location)
	}
	return m.withCells(cells)
}

// HinderedCount returns the number of cells classified as obstacles.
func (m RadarMap) HinderedCount() int {
	n := 0
	for _, c := range m.cells {
		if c.Hindered() {
			n++
		}
	}
	return n
}

// KnownRatio returns the fraction of cells carrying any evidence.
func (m RadarMap) KnownRatio() float64 {
	if len(m.cells) == 0 {
		return 0
	}
	known := 0
	for _, c := range m.cells {
		if !c.Unknown() {
			known++
		}
	}
	return float64(known) / float64(len(m.cells))
}

// rotateToWorld maps a grid-local offset into the world frame of a
// robot heading along the given compass angle.
func rotateToWorld(local orb.Point, heading geom.Angle, center orb.Point) orb.Point {
	sin := heading.Sin()
	cos := heading.Cos()
	return orb.Point{
		center.X() + local.X()*cos + local.Y()*sin,
		center.Y() - local.X()*sin + local.Y()*cos,
	}
}

// quantizeCardinal returns the cardinal angle (0, 90, 180 or 270
// degrees) nearest to the given direction.
func quantizeCardinal(direction geom.Angle) geom.Angle {
	rad := direction.ToRad() + 2*math.Pi
	idx := int(math.Round(rad/(math.Pi/2))) % 4
	switch idx {
	case 1:
		return geom.Deg90
	case 2:
		return geom.Deg180
	case 3:
		return geom.Deg270
	default:
		return geom.Deg0
	}
}
