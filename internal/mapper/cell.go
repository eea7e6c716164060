// Package mapper maintains the probabilistic occupancy representation of
// the space around the robot. The persistent store is the RadarMap; the
// GridMap and PolarMap types are consumer-specific re-projections of it.
//
// Every type in this package is an immutable value: mutating operations
// return a new instance and never touch shared state in place, so
// concurrent readers can keep traversing an older snapshot while a newer
// one is being computed.
package mapper

import (
	"math"

	"github.com/paulmach/orb"
)

// CellStatus is the derived classification of a map cell. It is a pure
// function of the cell evidence, never stored separately.
type CellStatus string

const (
	// CellUnknown indicates no evidence has been recorded.
	CellUnknown CellStatus = "unknown"
	// CellEmpty indicates anechoic evidence prevails (likely free space).
	CellEmpty CellStatus = "empty"
	// CellHindered indicates echogenic evidence prevails (likely obstacle).
	CellHindered CellStatus = "hindered"
	// CellContact indicates the cell was touched by a contact sensor;
	// it overrides echo-based classification until explicitly cleared.
	CellContact CellStatus = "contact"
)

// Cell keeps the evidence recorded for one grid cell: decaying echo
// counters, the contact flag and the timestamp of the last observation.
// Weights are never negative and decay toward zero with elapsed time; a
// fresh observation resets the decay reference to its own timestamp.
type Cell struct {
	Location        orb.Point
	Timestamp       int64 // last touched (ms)
	EchogenicWeight float64
	AnechoicWeight  float64
	Contact         bool
}

// UnknownCell returns the cell at the given location with no evidence.
func UnknownCell(location orb.Point) Cell {
	return Cell{Location: location}
}

// Status derives the classification from the evidence.
func (c Cell) Status() CellStatus {
	switch {
	case c.Contact:
		return CellContact
	case c.EchogenicWeight > c.AnechoicWeight && c.EchogenicWeight > 0:
		return CellHindered
	case c.AnechoicWeight > 0:
		return CellEmpty
	default:
		return CellUnknown
	}
}

// Unknown reports whether the cell carries no evidence.
func (c Cell) Unknown() bool { return c.Status() == CellUnknown }

// Empty reports whether the cell is classified as free space.
func (c Cell) Empty() bool { return c.Status() == CellEmpty }

// Hindered reports whether the cell is classified as an obstacle,
// either by echo evidence or by contact.
func (c Cell) Hindered() bool {
	s := c.Status()
	return s == CellHindered || s == CellContact
}

// Echogenic reports whether echo evidence prevails.
func (c Cell) Echogenic() bool { return c.Status() == CellHindered }

// Anechoic reports whether no-echo evidence prevails.
func (c Cell) Anechoic() bool { return c.Status() == CellEmpty }

// decayed returns both weights decayed by the elapsed time since the
// last observation at the given half-life (ms). Negative elapsed time
// counts as zero: evidence never grows back.
func (c Cell) decayed(timestamp int64, halfLife float64) (echogenic, anechoic float64) {
	if c.Timestamp == 0 {
		return 0, 0
	}
	dt := float64(timestamp - c.Timestamp)
	if dt <= 0 || halfLife <= 0 {
		return c.EchogenicWeight, c.AnechoicWeight
	}
	k := math.Exp2(-dt / halfLife)
	return c.EchogenicWeight * k, c.AnechoicWeight * k
}

// AddEchogenic returns the cell with one unit of obstacle evidence
// registered at the given timestamp, after decaying the prior weights at
// the given half-life (ms). The contact flag is cleared.
func (c Cell) AddEchogenic(timestamp int64, halfLife float64) Cell {
	e, a := c.decayed(timestamp, halfLife)
	return Cell{
		Location:        c.Location,
		Timestamp:       timestamp,
		EchogenicWeight: e + 1,
		AnechoicWeight:  a,
	}
}

// AddAnechoic returns the cell with one unit of free-space evidence
// registered at the given timestamp, after decaying the prior weights at
// the given half-life (ms). The contact flag is cleared.
func (c Cell) AddAnechoic(timestamp int64, halfLife float64) Cell {
	e, a := c.decayed(timestamp, halfLife)
	return Cell{
		Location:        c.Location,
		Timestamp:       timestamp,
		EchogenicWeight: e,
		AnechoicWeight:  a + 1,
	}
}

// SetContact returns the cell marked by a contact sensor at the given
// timestamp. Contact is terminal until explicitly cleared.
func (c Cell) SetContact(timestamp int64) Cell {
	c.Contact = true
	c.Timestamp = timestamp
	return c
}

// SetHindered returns the cell forced to the hindered classification.
func (c Cell) SetHindered(timestamp int64) Cell {
	return Cell{
		Location:        c.Location,
		Timestamp:       timestamp,
		EchogenicWeight: 1,
	}
}

// SetEmpty returns the cell forced to the empty classification.
func (c Cell) SetEmpty(timestamp int64) Cell {
	return Cell{
		Location:       c.Location,
		Timestamp:      timestamp,
		AnechoicWeight: 1,
	}
}

// SetUnknown returns the cell with all evidence dropped.
func (c Cell) SetUnknown() Cell { return UnknownCell(c.Location) }

// WithLocation returns the cell relocated to the given point. The
// evidence is preserved; used when re-projecting cells between frames.
func (c Cell) WithLocation(location orb.Point) Cell {
	c.Location = location
	return c
}

// Clean returns the unknown cell when the evidence is older than maxAge
// (ms) at the given instant, the receiver otherwise. Contact cells are
// exempt from the timeout unless cleanContacts is set.
func (c Cell) Clean(timestamp, maxAge int64, cleanContacts bool) Cell {
	if c.Unknown() {
		return c
	}
	if c.Contact && !cleanContacts {
		return c
	}
	if timestamp-c.Timestamp > maxAge {
		return UnknownCell(c.Location)
	}
	return c
}
