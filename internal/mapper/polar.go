package mapper

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/roverkit/perception/internal/geom"
)

// SectorStatus is the classification of one polar sector.
type SectorStatus string

const (
	// SectorUnknown indicates no evidence was observed along the bearing.
	SectorUnknown SectorStatus = "unknown"
	// SectorEmpty indicates known-free evidence and no obstacle in range.
	SectorEmpty SectorStatus = "empty"
	// SectorHindered indicates an obstacle was detected along the bearing.
	SectorHindered SectorStatus = "hindered"
)

// CircularSector is one angular bin of a PolarMap. Location and
// Distance are populated only for hindered sectors: they point at the
// nearest detected obstacle in the bearing band.
type CircularSector struct {
	Status    SectorStatus
	Timestamp int64 // ms of the supporting evidence, zero when unknown
	Location  orb.Point
	Distance  float64
}

// UnknownSector returns the sector with no evidence.
func UnknownSector() CircularSector {
	return CircularSector{Status: SectorUnknown}
}

// EmptySector returns a known-free sector supported by evidence at the
// given instant.
func EmptySector(timestamp int64) CircularSector {
	return CircularSector{Status: SectorEmpty, Timestamp: timestamp}
}

// HinderedSector returns an obstructed sector with the nearest obstacle
// point and its distance from the map center.
func HinderedSector(timestamp int64, location orb.Point, distance float64) CircularSector {
	return CircularSector{
		Status:    SectorHindered,
		Timestamp: timestamp,
		Location:  location,
		Distance:  distance,
	}
}

// Known reports whether the sector carries any evidence.
func (s CircularSector) Known() bool { return s.Status != SectorUnknown }

// Hindered reports whether an obstacle was detected in the sector.
func (s CircularSector) Hindered() bool { return s.Status == SectorHindered }

// Empty reports whether the sector is known free.
func (s CircularSector) Empty() bool { return s.Status == SectorEmpty }

// PolarMap is an angular discretization of the space around a focal
// point: sector zero points along the map direction and indices grow
// clockwise, covering a full turn in equal bins.
type PolarMap struct {
	sectors   []CircularSector
	center    orb.Point
	direction geom.Angle
}

// NewPolarMap returns the all-unknown polar map with the given
// resolution, center and heading.
func NewPolarMap(sectorsNumber int, center orb.Point, direction geom.Angle) PolarMap {
	sectors := make([]CircularSector, sectorsNumber)
	for i := range sectors {
		sectors[i] = UnknownSector()
	}
	return PolarMap{sectors: sectors, center: center, direction: direction}
}

// SectorsNumber returns the number of angular bins.
func (p PolarMap) SectorsNumber() int { return len(p.sectors) }

// Center returns the focal point in world coordinates.
func (p PolarMap) Center() orb.Point { return p.center }

// Direction returns the world heading of sector zero.
func (p PolarMap) Direction() geom.Angle { return p.direction }

// Sector returns the sector at the given index. The index must be valid.
func (p PolarMap) Sector(index int) CircularSector { return p.sectors[index] }

// Sectors returns a copy of the sector array.
func (p PolarMap) Sectors() []CircularSector {
	out := make([]CircularSector, len(p.sectors))
	copy(out, p.sectors)
	return out
}

// SectorAngle returns the angular width of one sector (rad).
func (p PolarMap) SectorAngle() float64 {
	return 2 * math.Pi / float64(len(p.sectors))
}

// SectorDirection returns the bearing of the sector center relative to
// the map direction.
func (p PolarMap) SectorDirection(index int) geom.Angle {
	return geom.FromRad(geom.NormRad(float64(index) * p.SectorAngle()))
}

// SectorIndex returns the index of the sector containing the given
// bearing relative to the map direction.
func (p PolarMap) SectorIndex(bearing geom.Angle) int {
	n := len(p.sectors)
	idx := int(math.Floor(bearing.ToRad()/p.SectorAngle() + 0.5))
	return ((idx % n) + n) % n
}

// SectorByDirection returns the sector containing the given bearing
// relative to the map direction.
func (p PolarMap) SectorByDirection(bearing geom.Angle) CircularSector {
	return p.sectors[p.SectorIndex(bearing)]
}
