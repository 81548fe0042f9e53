// Command genmock writes reproducible satellite dataset fixtures and sample
// simulation events for every catalog region. It draws from the same
// generator the service uses, so fixtures match what the API would serve for
// the given seed.
//
// Usage:
//
//	go run ./cmd/genmock -seed 42 -out data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/agroverse-service/internal/domain"
)

var chartDatasets = []domain.Dataset{domain.DatasetRainfall, domain.DatasetSoil, domain.DatasetVegetation}

// regionFixture is one region's dashboard data.
type regionFixture struct {
	Region   domain.Region   `json:"region"`
	Seed     uint64          `json:"seed"`
	Overview domain.Overview `json:"overview"`
	Series   []domain.Series `json:"series"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", 42, "seed for the dataset generator")
	out := flag.String("out", "", "output directory for fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.October, 5, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewPCG(*seed, *seed>>1|1))

	regions := domain.Regions()
	events := make([]domain.SimulationEvent, 0, len(regions))

	for _, r := range regions {
		fx := regionFixture{
			Region:   r,
			Seed:     *seed,
			Overview: domain.RegionOverview(r.ID),
			Series:   make([]domain.Series, 0, len(chartDatasets)),
		}
		for _, ds := range chartDatasets {
			fx.Series = append(fx.Series, domain.GenerateSeries(rng, r.ID, ds))
		}

		path := filepath.Join(*out, r.ID+".json")
		if err := writeJSON(path, fx); err != nil {
			return fmt.Errorf("writing %s fixture: %w", r.ID, err)
		}
		log.Printf("wrote %s", path)

		d := domain.DefaultDecision()
		events = append(events, domain.NewSimulationEvent("mock-"+r.ID, r.ID, d, domain.Simulate(r.ID, d)))

		printSeriesStats(fx)
	}

	eventsPath := filepath.Join(*out, "simulation_events.json")
	if err := writeJSON(eventsPath, events); err != nil {
		return fmt.Errorf("writing events fixture: %w", err)
	}
	log.Printf("wrote %s (%d events)", eventsPath, len(events))
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// seriesStats summarizes one series for eyeballing against test ranges.
type seriesStats struct {
	min, max, mean float64
}

func collectStats(s domain.Series) seriesStats {
	if len(s.Points) == 0 {
		return seriesStats{}
	}
	st := seriesStats{min: s.Points[0].Value, max: s.Points[0].Value}
	var sum float64
	for _, p := range s.Points {
		st.min = min(st.min, p.Value)
		st.max = max(st.max, p.Value)
		sum += p.Value
	}
	st.mean = sum / float64(len(s.Points))
	return st
}

func printSeriesStats(fx regionFixture) {
	fmt.Printf("\n=== %s (%s) ===\n", fx.Region.Name, fx.Region.ID)
	for _, s := range fx.Series {
		st := collectStats(s)
		fmt.Printf("%-10s min=%8.2f max=%8.2f mean=%8.2f %s\n", s.Dataset, st.min, st.max, st.mean, s.Unit)
	}
}
