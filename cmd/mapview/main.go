// mapview runs a simulated sensor sweep against an obstacle layout
// and renders the resulting occupancy map to a PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"

	"github.com/roverkit/perception/internal/geom"
	"github.com/roverkit/perception/internal/mapper"
	"github.com/roverkit/perception/internal/monitor"
	"github.com/roverkit/perception/internal/obstacles"
)

// demoArena builds a square walled arena with random clutter when no
// obstacle file is given.
func demoArena(gridSize float64, seed int64) obstacles.ObstacleMap {
	rnd := rand.New(rand.NewSource(seed))
	return obstacles.NewBuilder(gridSize).
		AddRect(-2.5, -2.5, 2.5, 2.5).
		AddRandom(rnd, orb.Point{0, 0}, 2.2, orb.Point{0, 0}, 0.8, 10).
		Build()
}

func main() {
	configPath := flag.String("config", "", "Mapper config YAML (defaults apply when empty)")
	obstaclePath := flag.String("obstacles", "", "Obstacle layout YAML (demo arena when empty)")
	output := flag.String("output", "mapview.png", "Output PNG filename")
	sweeps := flag.Int("sweeps", 3, "Number of full 360-degree sweeps")
	stepsPerSweep := flag.Int("steps", 72, "Sensor directions per sweep")
	tickMillis := flag.Int64("tick", 100, "Milliseconds between readings")
	seed := flag.Int64("seed", 1, "Random seed for the demo arena")
	flag.Parse()

	cfg := mapper.DefaultConfig()
	if *configPath != "" {
		loaded, err := mapper.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	var arena obstacles.ObstacleMap
	if *obstaclePath != "" {
		loaded, err := obstacles.Load(*obstaclePath)
		if err != nil {
			log.Fatalf("Failed to load obstacles: %v", err)
		}
		arena = loaded
	} else {
		arena = demoArena(cfg.GridSize, *seed)
	}
	log.Printf("Arena: %d obstacles, grid %.2f m", arena.Size(), arena.GridSize())

	modeller, err := mapper.NewWorldModeller(cfg, orb.Point{0, 0})
	if err != nil {
		log.Fatalf("Failed to build modeller: %v", err)
	}

	position := orb.Point{0, 0}
	halfCone := geom.FromDeg(cfg.ReceptiveAngleDeg)
	timestamp := int64(1)
	var echoes []float64

	for sweep := 0; sweep < *sweeps; sweep++ {
		for step := 0; step < *stepsPerSweep; step++ {
			direction := geom.FromDeg(float64(step) * 360 / float64(*stepsPerSweep))
			echoDistance := 0.0
			if d, ok := arena.NearestEcho(position, direction, halfCone, cfg.MaxRadarDistance); ok {
				echoDistance = d
				echoes = append(echoes, d)
			}
			modeller.OnSignal(mapper.WorldSignal{
				Sensor: mapper.SensorSignal{
					SensorPosition: position,
					Direction:      direction,
					EchoDistance:   echoDistance,
					Timestamp:      timestamp,
				},
				FrontContact: echoDistance > 0 && echoDistance <= cfg.ContactRadius,
			})
			timestamp += *tickMillis
		}
	}

	radar := modeller.Radar()
	log.Printf("Map: %d cells, %.1f%% known, %d hindered",
		radar.Size(), radar.KnownRatio()*100, radar.HinderedCount())

	if len(echoes) > 0 {
		mean := stat.Mean(echoes, nil)
		sd := stat.StdDev(echoes, nil)
		log.Printf("Echoes: %d readings, mean %.3f m, stddev %.3f m", len(echoes), mean, sd)
	} else {
		log.Printf("Echoes: none within range")
	}

	polar := modeller.PolarView(position, geom.Deg0)
	hinderedSectors := 0
	for i := 0; i < polar.SectorsNumber(); i++ {
		if polar.Sector(i).Hindered() {
			hinderedSectors++
		}
	}
	log.Printf("Polar: %d/%d sectors hindered", hinderedSectors, polar.SectorsNumber())

	renderer := monitor.NewHeatmapRenderer("Occupancy map")
	if err := renderer.RenderPNG(radar, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render %s: %v\n", *output, err)
		os.Exit(1)
	}
	log.Printf("Wrote %s", *output)
}
