package mapper

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/roverkit/perception/internal/geom"
)

func hinderedRadar(t *testing.T, x, y float64) RadarMap {
	t.Helper()
	m := mustRadarMap(t, testConfig(), orb.Point{0, 0})
	idx := m.Topology().IndexOf(x, y)
	if idx < 0 {
		t.Fatalf("(%v, %v) outside the test grid", x, y)
	}
	return m.UpdateCell(idx, func(c Cell) Cell { return c.SetHindered(1000) })
}

func TestBuildGridMapIdentityHeading(t *testing.T) {
	t.Parallel()

	radar := hinderedRadar(t, 0.2, 0.4)
	g, err := BuildGridMap(radar, orb.Point{0, 0}, geom.Deg0, 11)
	if err != nil {
		t.Fatalf("BuildGridMap: %v", err)
	}
	if g.Size() != 121 {
		t.Fatalf("size = %d, want 121", g.Size())
	}
	c, ok := g.CellAt(0.2, 0.4)
	if !ok || !c.Hindered() {
		t.Errorf("cell (0.2, 0.4) = %+v, want hindered", c)
	}
	if c.Location.X() != 0.2 || c.Location.Y() != 0.4 {
		t.Errorf("cell location = %v, want the map-local point", c.Location)
	}
}

func TestBuildGridMapQuarterTurn(t *testing.T) {
	t.Parallel()

	radar := hinderedRadar(t, 0.2, 0.4)
	g, err := BuildGridMap(radar, orb.Point{0, 0}, geom.Deg90, 11)
	if err != nil {
		t.Fatalf("BuildGridMap: %v", err)
	}
	// The robot heads east: the obstacle northeast of it appears in
	// map-local coordinates rotated a quarter turn the other way.
	c, ok := g.CellAt(-0.4, 0.2)
	if !ok || !c.Hindered() {
		t.Errorf("cell (-0.4, 0.2) = %+v, want hindered", c)
	}
	straight, _ := g.CellAt(0.2, 0.4)
	if straight.Hindered() {
		t.Error("obstacle must not appear at its world offset too")
	}
}

func TestBuildGridMapQuantizesHeading(t *testing.T) {
	t.Parallel()

	radar := hinderedRadar(t, 0.2, 0.4)
	tests := []struct {
		heading  float64
		cardinal geom.Angle
	}{
		{10, geom.Deg0},
		{100, geom.Deg90},
		{-100, geom.Deg270},
		{170, geom.Deg180},
		{-40, geom.Deg0},
		{-50, geom.Deg270},
	}
	for _, tc := range tests {
		g, err := BuildGridMap(radar, orb.Point{0, 0}, geom.FromDeg(tc.heading), 11)
		if err != nil {
			t.Fatalf("BuildGridMap: %v", err)
		}
		if !g.Direction().Equal(tc.cardinal) {
			t.Errorf("heading %v quantized to %v, want %v", tc.heading, g.Direction(), tc.cardinal)
		}
	}
}

func TestBuildGridMapOffCenterUnknownFringe(t *testing.T) {
	t.Parallel()

	radar := mustRadarMap(t, testConfig(), orb.Point{0, 0})
	g, err := BuildGridMap(radar, orb.Point{0.8, 0.8}, geom.Deg0, 11)
	if err != nil {
		t.Fatalf("BuildGridMap: %v", err)
	}
	// The far corner of the view maps beyond the source grid.
	c, ok := g.CellAt(1, 1)
	if !ok {
		t.Fatal("corner is inside the view topology")
	}
	if !c.Unknown() {
		t.Errorf("corner cell = %+v, want unknown", c)
	}
}

func TestBuildGridMapInvalidSize(t *testing.T) {
	t.Parallel()

	radar := mustRadarMap(t, testConfig(), orb.Point{0, 0})
	if _, err := BuildGridMap(radar, orb.Point{0, 0}, geom.Deg0, 0); err == nil {
		t.Error("expected construction error for zero size")
	}
}
