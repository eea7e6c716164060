// Package monitor renders occupancy snapshots to PNG files for
// offline inspection of mapping runs.
package monitor

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/roverkit/perception/internal/mapper"
)

var (
	emptyColor    = color.RGBA{R: 96, G: 200, B: 96, A: 255}
	hinderedColor = color.RGBA{R: 220, G: 48, B: 48, A: 255}
	contactColor  = color.RGBA{R: 160, G: 48, B: 220, A: 255}
)

// HeatmapRenderer draws one marker per known cell of an occupancy
// map. Unknown cells are left blank.
type HeatmapRenderer struct {
	Title string
	// Size is the square output edge; zero means 8 inches.
	Size vg.Length
}

// NewHeatmapRenderer returns a renderer with default sizing.
func NewHeatmapRenderer(title string) HeatmapRenderer {
	return HeatmapRenderer{Title: title}
}

// RenderPNG writes the map snapshot to path as a PNG scatter plot.
func (r HeatmapRenderer) RenderPNG(radar mapper.RadarMap, path string) error {
	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	var emptyPts, hinderedPts, contactPts plotter.XYs
	for _, cell := range radar.Cells() {
		xy := plotter.XY{X: cell.Location.X(), Y: cell.Location.Y()}
		switch cell.Status() {
		case mapper.CellContact:
			contactPts = append(contactPts, xy)
		case mapper.CellHindered:
			hinderedPts = append(hinderedPts, xy)
		case mapper.CellEmpty:
			emptyPts = append(emptyPts, xy)
		}
	}

	for _, layer := range []struct {
		name string
		pts  plotter.XYs
		fill color.Color
	}{
		{"empty", emptyPts, emptyColor},
		{"hindered", hinderedPts, hinderedColor},
		{"contact", contactPts, contactColor},
	} {
		if len(layer.pts) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(layer.pts)
		if err != nil {
			return fmt.Errorf("build %s layer: %w", layer.name, err)
		}
		scatter.GlyphStyle.Color = layer.fill
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
		p.Legend.Add(layer.name, scatter)
	}
	p.Legend.Top = true

	bound := radar.Topology().Bound()
	p.X.Min, p.X.Max = bound.Min.X(), bound.Max.X()
	p.Y.Min, p.Y.Max = bound.Min.Y(), bound.Max.Y()

	size := r.Size
	if size == 0 {
		size = 8 * vg.Inch
	}
	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}
