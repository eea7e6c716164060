package mapper

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/roverkit/perception/internal/geom"
)

func newTestWorldModeller(t *testing.T) *WorldModeller {
	t.Helper()
	w, err := NewWorldModeller(testConfig(), orb.Point{0, 0})
	if err != nil {
		t.Fatalf("NewWorldModeller: %v", err)
	}
	return w
}

func TestNewWorldModellerInvalidConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewWorldModeller(testConfig().WithGrid(0, 0, 0.2), orb.Point{}); err == nil {
		t.Error("expected construction error")
	}
	if _, err := NewWorldModeller(testConfig().WithSectors(0, 0.28), orb.Point{}); err == nil {
		t.Error("expected construction error for zero sectors")
	}
}

func TestOnSignalAdvancesSnapshot(t *testing.T) {
	t.Parallel()

	w := newTestWorldModeller(t)
	before := w.Radar()
	after := w.OnSignal(WorldSignal{
		Sensor: SensorSignal{
			SensorPosition: orb.Point{0, 0},
			Direction:      geom.Deg0,
			EchoDistance:   0.8,
			Timestamp:      1000,
		},
	})

	if before.KnownRatio() != 0 {
		t.Error("the prior snapshot must stay untouched")
	}
	c, ok := after.CellAt(0, 0.8)
	if !ok || !c.Hindered() {
		t.Errorf("cell (0, 0.8) = %+v, want hindered", c)
	}
	if w.Radar().KnownRatio() != after.KnownRatio() {
		t.Error("the modeller should own the returned snapshot")
	}
	if after.CleanTimestamp() == 0 {
		t.Error("the staleness sweep should have been scheduled")
	}
}

func TestOnSignalMarksContacts(t *testing.T) {
	t.Parallel()

	w := newTestWorldModeller(t)
	after := w.OnSignal(WorldSignal{
		Sensor: SensorSignal{
			SensorPosition: orb.Point{0, 0},
			Direction:      geom.Deg0,
			EchoDistance:   0,
			Timestamp:      1000,
		},
		RearContact: true,
	})

	c, ok := after.CellAt(0, 0)
	if !ok || c.Status() != CellContact {
		t.Errorf("sensor cell = %+v, want contact", c)
	}
}

func TestWorldSignalHasContact(t *testing.T) {
	t.Parallel()

	if (WorldSignal{}).HasContact() {
		t.Error("no contact expected")
	}
	if !(WorldSignal{FrontContact: true}).HasContact() {
		t.Error("front contact expected")
	}
	if !(WorldSignal{RearContact: true}).HasContact() {
		t.Error("rear contact expected")
	}
}

func TestWorldModellerViews(t *testing.T) {
	t.Parallel()

	w := newTestWorldModeller(t)
	w.OnSignal(WorldSignal{
		Sensor: SensorSignal{
			SensorPosition: orb.Point{0, 0},
			Direction:      geom.Deg0,
			EchoDistance:   0.8,
			Timestamp:      1000,
		},
	})

	g, err := w.GridView(orb.Point{0, 0}, geom.Deg0)
	if err != nil {
		t.Fatalf("GridView: %v", err)
	}
	c, ok := g.CellAt(0, 0.8)
	if !ok || !c.Hindered() {
		t.Errorf("grid view cell (0, 0.8) = %+v, want hindered", c)
	}

	p := w.PolarView(orb.Point{0, 0}, geom.Deg0)
	if p.SectorsNumber() != testConfig().SectorsNumber {
		t.Fatalf("polar view sectors = %d", p.SectorsNumber())
	}
	if !p.Sector(0).Hindered() {
		t.Errorf("ahead sector = %+v, want hindered", p.Sector(0))
	}
}

func TestWorldModellerReset(t *testing.T) {
	t.Parallel()

	w := newTestWorldModeller(t)
	w.OnSignal(WorldSignal{
		Sensor: SensorSignal{
			SensorPosition: orb.Point{0, 0},
			Direction:      geom.Deg0,
			EchoDistance:   0.8,
			Timestamp:      1000,
		},
	})
	if w.Radar().KnownRatio() == 0 {
		t.Fatal("precondition: the map must carry evidence")
	}
	w.Reset()
	if w.Radar().KnownRatio() != 0 {
		t.Error("reset must drop all evidence")
	}
}
