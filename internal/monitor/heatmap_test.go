package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/roverkit/perception/internal/geom"
	"github.com/roverkit/perception/internal/mapper"
)

func testRadar(t *testing.T) mapper.RadarMap {
	t.Helper()
	cfg := mapper.DefaultConfig().WithGrid(11, 11, 0.2)
	m, err := mapper.NewRadarMap(cfg, orb.Point{0, 0})
	if err != nil {
		t.Fatalf("NewRadarMap: %v", err)
	}
	m = m.Update(mapper.SensorSignal{
		SensorPosition: orb.Point{0, 0},
		Direction:      geom.Deg0,
		EchoDistance:   0.8,
		Timestamp:      1000,
	})
	return m.SetContactsAt(orb.Point{-0.6, 0}, 0.2, 1000)
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	r := NewHeatmapRenderer("test map")

	if err := r.RenderPNG(testRadar(t), path); err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestRenderPNGAllUnknown(t *testing.T) {
	cfg := mapper.DefaultConfig().WithGrid(5, 5, 0.2)
	m, err := mapper.NewRadarMap(cfg, orb.Point{0, 0})
	if err != nil {
		t.Fatalf("NewRadarMap: %v", err)
	}

	path := filepath.Join(t.TempDir(), "blank.png")
	if err := NewHeatmapRenderer("blank").RenderPNG(m, path); err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestRenderPNGBadPath(t *testing.T) {
	err := NewHeatmapRenderer("bad").RenderPNG(testRadar(t), filepath.Join(t.TempDir(), "missing", "map.png"))
	if err == nil {
		t.Error("expected an error for an unwritable path")
	}
}
