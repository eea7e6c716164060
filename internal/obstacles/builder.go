package obstacles

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gopkg.in/yaml.v3"
)

// Builder composes an ObstacleMap from drawing primitives. Points are
// snapped to the grid pitch as they are added and duplicates collapse
// onto the first occupant of a cell.
type Builder struct {
	gridSize float64
	order    [][2]int
	cells    map[[2]int]Obstacle
}

// NewBuilder returns an empty builder with the given snap pitch.
func NewBuilder(gridSize float64) *Builder {
	return &Builder{
		gridSize: gridSize,
		cells:    map[[2]int]Obstacle{},
	}
}

func (b *Builder) put(x, y float64, label string) *Builder {
	key := [2]int{}
	key[0], key[1] = snapIndex(x, y, b.gridSize)
	if _, ok := b.cells[key]; ok {
		return b
	}
	b.order = append(b.order, key)
	b.cells[key] = Obstacle{
		Location: snapPoint(x, y, b.gridSize),
		Label:    label,
	}
	return b
}

// AddPoint adds one unlabelled obstacle at the snapped location.
func (b *Builder) AddPoint(x, y float64) *Builder {
	return b.put(x, y, "")
}

// AddLabeled adds one obstacle carrying a generated ID.
func (b *Builder) AddLabeled(x, y float64) *Builder {
	return b.put(x, y, uuid.NewString())
}

// AddLine traces the segment from (x0, y0) to (x1, y1) filling every
// grid cell it crosses.
func (b *Builder) AddLine(x0, y0, x1, y1 float64) *Builder {
	length := math.Hypot(x1-x0, y1-y0)
	steps := int(math.Ceil(length / (b.gridSize / 2)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.put(x0+(x1-x0)*t, y0+(y1-y0)*t, "")
	}
	return b
}

// AddRect traces the axis-aligned rectangle outline with corners at
// (x0, y0) and (x1, y1).
func (b *Builder) AddRect(x0, y0, x1, y1 float64) *Builder {
	b.AddLine(x0, y0, x1, y0)
	b.AddLine(x1, y0, x1, y1)
	b.AddLine(x1, y1, x0, y1)
	return b.AddLine(x0, y1, x0, y0)
}

// AddRandom scatters count obstacles uniformly in the square of half
// side maxDistance around center, rejecting draws inside the circular
// keep-out area. The caller injects the random source so layouts are
// reproducible.
func (b *Builder) AddRandom(rnd *rand.Rand, center orb.Point, maxDistance float64, keepOut orb.Point, keepOutRadius float64, count int) *Builder {
	for placed := 0; placed < count; {
		p := orb.Point{
			rnd.Float64()*2*maxDistance - maxDistance + center.X(),
			rnd.Float64()*2*maxDistance - maxDistance + center.Y(),
		}
		if planar.Distance(p, keepOut) <= keepOutRadius {
			continue
		}
		before := len(b.cells)
		b.put(p.X(), p.Y(), "")
		if len(b.cells) > before {
			placed++
		}
	}
	return b
}

// Build returns the immutable map. Obstacles keep insertion order so
// repeated builds from the same primitives are identical.
func (b *Builder) Build() ObstacleMap {
	cells := make([]Obstacle, 0, len(b.order))
	for _, key := range b.order {
		cells = append(cells, b.cells[key])
	}
	return ObstacleMap{cells: cells, gridSize: b.gridSize}
}

type obstacleEntry struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Label string  `yaml:"label,omitempty"`
}

type obstacleFile struct {
	GridSize  float64         `yaml:"gridSize"`
	Obstacles []obstacleEntry `yaml:"obstacles"`
}

// Load reads an obstacle map from a YAML file holding gridSize and a
// list of {x, y, label?} entries.
func Load(path string) (ObstacleMap, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
	default:
		return ObstacleMap{}, fmt.Errorf("obstacle file %s must have .yaml or .yml extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ObstacleMap{}, fmt.Errorf("reading obstacle file: %w", err)
	}
	var file obstacleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ObstacleMap{}, fmt.Errorf("parsing obstacle file %s: %w", path, err)
	}
	if file.GridSize <= 0 {
		return ObstacleMap{}, fmt.Errorf("obstacle file %s: gridSize must be positive, got %v", path, file.GridSize)
	}
	b := NewBuilder(file.GridSize)
	for _, e := range file.Obstacles {
		b.put(e.X, e.Y, e.Label)
	}
	return b.Build(), nil
}

// Save writes the map to a YAML file in the format Load reads.
func (m ObstacleMap) Save(path string) error {
	file := obstacleFile{GridSize: m.gridSize}
	for _, c := range m.cells {
		file.Obstacles = append(file.Obstacles, obstacleEntry{
			X:     c.Location.X(),
			Y:     c.Location.Y(),
			Label: c.Label,
		})
	}
	sort.SliceStable(file.Obstacles, func(i, j int) bool {
		if file.Obstacles[i].Y != file.Obstacles[j].Y {
			return file.Obstacles[i].Y < file.Obstacles[j].Y
		}
		return file.Obstacles[i].X < file.Obstacles[j].X
	})
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding obstacle file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing obstacle file: %w", err)
	}
	return nil
}
