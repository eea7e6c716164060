package mapper

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/roverkit/perception/internal/geom"
	"github.com/roverkit/perception/internal/grid"
)

// PolarMapModeller projects a RadarMap into a PolarMap around a focal
// point. The sector view cones overlap their neighbours by 25% so that
// cell squares straddling a bin boundary are attributed to both bins.
type PolarMapModeller struct {
	sectorsNumber int
	minDistance   float64
}

// NewPolarMapModeller returns a modeller with the given angular
// resolution and blind radius (m).
func NewPolarMapModeller(sectorsNumber int, minDistance float64) (PolarMapModeller, error) {
	if sectorsNumber <= 0 {
		return PolarMapModeller{}, grid.ErrInvalidConfig
	}
	return PolarMapModeller{sectorsNumber: sectorsNumber, minDistance: minDistance}, nil
}

// SectorsNumber returns the angular resolution.
func (mo PolarMapModeller) SectorsNumber() int { return mo.sectorsNumber }

// Create projects the radar map into a polar map centred at the given
// point and oriented to the given heading. For each sector the closest
// hindered cell within maxDistance wins; a sector with no obstacle is
// empty when any free evidence was seen along the bearing, unknown
// otherwise. Evidence closer than the blind radius (or one grid step)
// is ignored.
func (mo PolarMapModeller) Create(radar RadarMap, center orb.Point, direction geom.Angle, maxDistance float64) PolarMap {
	n := mo.sectorsNumber
	topology := radar.Topology()
	gridSize := topology.GridSize()

	emptyDistances := make([]float64, n)
	notEmptyDistances := make([]float64, n)
	for i := 0; i < n; i++ {
		emptyDistances[i] = math.MaxFloat64
		notEmptyDistances[i] = math.MaxFloat64
	}
	emptyTimestamps := make([]int64, n)
	notEmptyTimestamps := make([]int64, n)
	notEmptyPoints := make([]orb.Point, n)

	thresholdDistance := math.Max(mo.minDistance, gridSize)
	sectorAngle := 2 * math.Pi / float64(n)
	halfWidth := geom.FromRad(sectorAngle * 1.25 / 2)

	for _, idx := range topology.IndicesByArea(grid.Circle(center, maxDistance)) {
		cell := radar.Cell(idx)
		if cell.Unknown() {
			continue
		}
		for i := 0; i < n; i++ {
			sectorDir := geom.FromRad(geom.NormRad(float64(i) * sectorAngle)).Add(direction)
			nearest, _, ok := geom.SquareArcInterval(cell.Location, gridSize, center, sectorDir, halfWidth)
			if !ok {
				continue
			}
			distance := planar.Distance(nearest, center)
			if distance < thresholdDistance || distance >= maxDistance {
				continue
			}
			switch {
			case cell.Empty():
				if distance < emptyDistances[i] {
					emptyDistances[i] = distance
					emptyTimestamps[i] = cell.Timestamp
				}
			default:
				if distance < notEmptyDistances[i] {
					notEmptyDistances[i] = distance
					notEmptyTimestamps[i] = cell.Timestamp
					notEmptyPoints[i] = nearest
				}
			}
		}
	}

	sectors := make([]CircularSector, n)
	for i := 0; i < n; i++ {
		switch {
		case notEmptyDistances[i] < maxDistance:
			// An obstacle beats everything else in the bearing band.
			sectors[i] = HinderedSector(notEmptyTimestamps[i], notEmptyPoints[i], notEmptyDistances[i])
		case emptyDistances[i] < maxDistance:
			// Free evidence and no obstacle in range.
			sectors[i] = EmptySector(emptyTimestamps[i])
		default:
			sectors[i] = UnknownSector()
		}
	}
	return PolarMap{sectors: sectors, center: center, direction: direction}
}
