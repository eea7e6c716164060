package mapper

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/roverkit/perception/internal/geom"
)

// WorldSignal is one perception tick: the proximity reading plus the
// bump sensor state sampled at the same instant.
type WorldSignal struct {
	Sensor       SensorSignal
	FrontContact bool
	RearContact  bool
}

// HasContact reports whether any bump sensor is pressed.
func (s WorldSignal) HasContact() bool { return s.FrontContact || s.RearContact }

// WorldModeller feeds perception signals into the evidence map and
// derives the consumer views. It is the single writer of the map; the
// RadarMap snapshots it hands out are immutable and may be shared
// across goroutines without locking.
type WorldModeller struct {
	radar         RadarMap
	polar         PolarMapModeller
	gridViewSize  int
	contactRadius float64
	maxDistance   float64
}

// NewWorldModeller builds a modeller with an all-unknown map centred
// at the given point.
func NewWorldModeller(cfg Config, center orb.Point) (*WorldModeller, error) {
	radar, err := NewRadarMap(cfg, center)
	if err != nil {
		return nil, fmt.Errorf("world modeller: %w", err)
	}
	polar, err := NewPolarMapModeller(cfg.SectorsNumber, cfg.MinSectorDistance)
	if err != nil {
		return nil, fmt.Errorf("world modeller: %w", err)
	}
	return &WorldModeller{
		radar:         radar,
		polar:         polar,
		gridViewSize:  cfg.Width,
		contactRadius: cfg.ContactRadius,
		maxDistance:   cfg.MaxRadarDistance,
	}, nil
}

// Radar returns the latest map snapshot.
func (w *WorldModeller) Radar() RadarMap { return w.radar }

// OnSignal advances the map with one perception tick and returns the
// new snapshot. Contacts mark the cells around the sensor position
// before the amortized staleness sweep runs.
func (w *WorldModeller) OnSignal(signal WorldSignal) RadarMap {
	radar := w.radar.Update(signal.Sensor)
	if signal.HasContact() {
		radar = radar.SetContactsAt(signal.Sensor.SensorPosition, w.contactRadius, signal.Sensor.Timestamp)
	}
	radar = radar.Clean(signal.Sensor.Timestamp)
	w.radar = radar
	return radar
}

// GridView resamples the current map into a robot-centric grid.
func (w *WorldModeller) GridView(center orb.Point, direction geom.Angle) (GridMap, error) {
	return BuildGridMap(w.radar, center, direction, w.gridViewSize)
}

// PolarView projects the current map into bearing sectors around the
// given pose.
func (w *WorldModeller) PolarView(center orb.Point, direction geom.Angle) PolarMap {
	return w.polar.Create(w.radar, center, direction, w.maxDistance)
}

// Reset discards all accumulated evidence, keeping the map geometry.
func (w *WorldModeller) Reset() {
	w.radar = w.radar.Map(func(c Cell) Cell { return c.SetUnknown() })
}
