package mapper

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roverkit/perception/internal/grid"
)

// Config collects the occupancy mapper parameters. Load it from YAML or
// start from DefaultConfig and adjust with the With* setters, then
// Validate before building maps.
type Config struct {
	// Grid geometry
	Width    int     `yaml:"width"`     // horizontal cells (default: 51)
	Height   int     `yaml:"height"`    // vertical cells (default: 51)
	GridSize float64 `yaml:"grid_size"` // cell side in metres (default: 0.2)

	// Sensor model
	MaxRadarDistance  float64 `yaml:"max_radar_distance"`  // echo range limit in metres (default: 3)
	ReceptiveAngleDeg float64 `yaml:"receptive_angle_deg"` // cone half-angle in degrees (default: 15)
	ContactRadius     float64 `yaml:"contact_radius"`      // bump marking radius in metres (default: 0.28)

	// Evidence decay and cleanup (milliseconds)
	EchoHalfLifeMillis  int64 `yaml:"echo_half_life_millis"` // weight decay half-life (default: 60000)
	MaxCellAgeMillis    int64 `yaml:"max_cell_age_millis"`   // evidence expiry (default: 300000)
	CleanIntervalMillis int64 `yaml:"clean_interval_millis"` // amortized cleanup period (default: 30000)
	CleanContacts       bool  `yaml:"clean_contacts"`        // expire contact cells too (default: false)

	// Polar view
	SectorsNumber     int     `yaml:"sectors_number"`      // angular bins (default: 24)
	MinSectorDistance float64 `yaml:"min_sector_distance"` // blind radius in metres (default: 0.28)
}

// DefaultConfig returns the operational defaults for a tabletop rover.
func DefaultConfig() Config {
	return Config{
		Width:               51,
		Height:              51,
		GridSize:            0.2,
		MaxRadarDistance:    3,
		ReceptiveAngleDeg:   15,
		ContactRadius:       0.28,
		EchoHalfLifeMillis:  60_000,
		MaxCellAgeMillis:    300_000,
		CleanIntervalMillis: 30_000,
		SectorsNumber:       24,
		MinSectorDistance:   0.28,
	}
}

// LoadConfig reads a Config from a YAML file. Fields omitted from the
// file keep their defaults, so partial configs are safe.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return Config{}, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every parameter is in its acceptable range.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", grid.ErrInvalidConfig, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", grid.ErrInvalidConfig, c.Height)
	}
	if c.GridSize <= 0 {
		return fmt.Errorf("%w: grid size must be positive, got %v", grid.ErrInvalidConfig, c.GridSize)
	}
	if c.MaxRadarDistance <= 0 {
		return fmt.Errorf("%w: max radar distance must be positive, got %v", grid.ErrInvalidConfig, c.MaxRadarDistance)
	}
	if c.ReceptiveAngleDeg <= 0 || c.ReceptiveAngleDeg > 90 {
		return fmt.Errorf("%w: receptive angle must be in (0, 90] degrees, got %v", grid.ErrInvalidConfig, c.ReceptiveAngleDeg)
	}
	if c.ContactRadius < 0 {
		return fmt.Errorf("%w: contact radius must be non-negative, got %v", grid.ErrInvalidConfig, c.ContactRadius)
	}
	if c.EchoHalfLifeMillis <= 0 {
		return fmt.Errorf("%w: echo half-life must be positive, got %d", grid.ErrInvalidConfig, c.EchoHalfLifeMillis)
	}
	if c.MaxCellAgeMillis <= 0 {
		return fmt.Errorf("%w: max cell age must be positive, got %d", grid.ErrInvalidConfig, c.MaxCellAgeMillis)
	}
	if c.CleanIntervalMillis <= 0 {
		return fmt.Errorf("%w: clean interval must be positive, got %d", grid.ErrInvalidConfig, c.CleanIntervalMillis)
	}
	if c.SectorsNumber <= 0 {
		return fmt.Errorf("%w: sectors number must be positive, got %d", grid.ErrInvalidConfig, c.SectorsNumber)
	}
	if c.MinSectorDistance < 0 {
		return fmt.Errorf("%w: min sector distance must be non-negative, got %v", grid.ErrInvalidConfig, c.MinSectorDistance)
	}
	return nil
}

// WithGrid sets the grid dimensions and cell size.
func (c Config) WithGrid(width, height int, gridSize float64) Config {
	c.Width = width
	c.Height = height
	c.GridSize = gridSize
	return c
}

// WithMaxRadarDistance sets the echo range limit (m).
func (c Config) WithMaxRadarDistance(d float64) Config {
	c.MaxRadarDistance = d
	return c
}

// WithReceptiveAngle sets the sensor cone half-angle (degrees).
func (c Config) WithReceptiveAngle(deg float64) Config {
	c.ReceptiveAngleDeg = deg
	return c
}

// WithContactRadius sets the bump marking radius (m).
func (c Config) WithContactRadius(r float64) Config {
	c.ContactRadius = r
	return c
}

// WithEchoHalfLife sets the evidence decay half-life (ms).
func (c Config) WithEchoHalfLife(millis int64) Config {
	c.EchoHalfLifeMillis = millis
	return c
}

// WithMaxCellAge sets the evidence expiry age (ms).
func (c Config) WithMaxCellAge(millis int64) Config {
	c.MaxCellAgeMillis = millis
	return c
}

// WithCleanInterval sets the amortized cleanup period (ms).
func (c Config) WithCleanInterval(millis int64) Config {
	c.CleanIntervalMillis = millis
	return c
}

// WithCleanContacts enables or disables contact cell expiry.
func (c Config) WithCleanContacts(enabled bool) Config {
	c.CleanContacts = enabled
	return c
}

// WithSectors sets the polar view resolution and blind radius.
func (c Config) WithSectors(n int, minDistance float64) Config {
	c.SectorsNumber = n
	c.MinSectorDistance = minDistance
	return c
}
