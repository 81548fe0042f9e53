// Command validate checks the scoring model end to end: worked examples,
// invariants over every catalog region and decision in the menu grid, session
// snapshot round trips, and (optionally) fixtures written by genmock.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate -fixtures data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/agroverse-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixtures := flag.String("fixtures", "", "directory written by genmock (optional)")
	flag.Parse()

	if code := run(*fixtures); code != 0 {
		os.Exit(code)
	}
}

func run(fixtureDir string) int {
	fmt.Println("=== AgroVerse Scoring Validation ===")
	fmt.Println()

	grid := decisionGrid()

	phases := []*phase{
		validateWorkedExamples(),
		validateGridInvariants(grid),
		validateSnapshots(grid),
	}
	if fixtureDir != "" {
		phases = append(phases, validateFixtures(fixtureDir))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Checked: %d regions x %d decisions\n", len(domain.Regions()), len(grid))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// decisionGrid enumerates every menu combination.
func decisionGrid() []domain.Decision {
	var out []domain.Decision
	for _, c := range domain.CropOptions() {
		for _, irr := range domain.IrrigationOptions() {
			for _, f := range domain.FertilizerOptions() {
				for _, cons := range []bool{false, true} {
					out = append(out, domain.Decision{
						Crop:         domain.Crop(c.Value),
						Irrigation:   domain.Irrigation(irr.Value),
						Fertilizer:   domain.Fertilizer(f.Value),
						Conservation: cons,
					})
				}
			}
		}
	}
	return out
}

// ── Worked examples ──

type workedExample struct {
	region   string
	decision domain.Decision
	want     domain.SimulationResult
	rating   domain.Rating
}

var workedExamples = []workedExample{
	{
		region:   domain.RegionSouthAsia,
		decision: domain.Decision{Crop: domain.CropWheat, Irrigation: domain.IrrigationMedium, Fertilizer: domain.FertilizerOrganicLow, Conservation: true},
		want:     domain.SimulationResult{Yield: 115, WaterUsage: 120, SoilHealth: 70, Profit: 910, SustainabilityScore: 85},
		rating:   domain.RatingExcellent,
	},
	{
		region:   domain.RegionAfrica,
		decision: domain.Decision{Crop: domain.CropRice, Irrigation: domain.IrrigationHigh, Fertilizer: domain.FertilizerSyntheticHigh},
		want:     domain.SimulationResult{Yield: 195, WaterUsage: 200, SoilHealth: 30, Profit: 1550, SustainabilityScore: 15},
		rating:   domain.RatingNeedsImprovement,
	},
	{
		region:   domain.RegionAfrica,
		decision: domain.Decision{Crop: domain.CropMillet, Irrigation: domain.IrrigationLow, Fertilizer: domain.FertilizerSyntheticLow, Conservation: true},
		want:     domain.SimulationResult{Yield: 89, WaterUsage: 70, SoilHealth: 55, Profit: 750, SustainabilityScore: 65},
		rating:   domain.RatingGood,
	},
	{
		region:   "europe",
		decision: domain.Decision{Crop: domain.CropVegetables, Irrigation: domain.IrrigationNone, Fertilizer: domain.FertilizerOrganicMedium, Conservation: true},
		want:     domain.SimulationResult{Yield: 109, WaterUsage: 40, SoilHealth: 75, Profit: 1010, SustainabilityScore: 95},
		rating:   domain.RatingExcellent,
	},
}

func validateWorkedExamples() *phase {
	p := &phase{name: "Worked examples"}
	fmt.Println("Phase 1: Worked examples...")

	for i, ex := range workedExamples {
		got := domain.Simulate(ex.region, ex.decision)
		if got != ex.want {
			p.errorf("example %d (%s %+v): got %+v, want %+v", i+1, ex.region, ex.decision, got, ex.want)
		}
		if r := domain.RatingFor(got.SustainabilityScore); r != ex.rating {
			p.errorf("example %d: rating %q, want %q", i+1, r, ex.rating)
		}
	}
	return p
}

// ── Grid invariants ──

var allowedWater = map[int]bool{40: true, 70: true, 120: true, 200: true}

func validateGridInvariants(grid []domain.Decision) *phase {
	p := &phase{name: "Grid invariants"}
	fmt.Println("Phase 2: Grid invariants...")

	for _, d := range grid {
		base := domain.Compute(d)
		if again := domain.Compute(d); again != base {
			p.errorf("%+v: non-deterministic (%+v vs %+v)", d, base, again)
		}
		checkResult(p, d, base)

		for _, r := range domain.Regions() {
			if got := domain.Simulate(r.ID, d); got != base {
				p.errorf("%s %+v: region changed the score (%+v vs %+v)", r.ID, d, got, base)
			}
		}
	}
	return p
}

func checkResult(p *phase, d domain.Decision, r domain.SimulationResult) {
	if r.SoilHealth < 0 || r.SoilHealth > 100 {
		p.errorf("%+v: soil health %d out of range", d, r.SoilHealth)
	}
	if r.SustainabilityScore < 0 || r.SustainabilityScore > 100 {
		p.errorf("%+v: sustainability %d out of range", d, r.SustainabilityScore)
	}
	if !allowedWater[r.WaterUsage] {
		p.errorf("%+v: unexpected water usage %d", d, r.WaterUsage)
	}
	if want := r.Yield*10 - r.WaterUsage*2; r.Profit != want {
		p.errorf("%+v: profit %d, want yield*10 - water*2 = %d", d, r.Profit, want)
	}
	if r.Yield <= 0 {
		p.errorf("%+v: non-positive yield %d", d, r.Yield)
	}
}

// ── Snapshots ──

func validateSnapshots(grid []domain.Decision) *phase {
	p := &phase{name: "Snapshot round trip"}
	fmt.Println("Phase 3: Snapshot round trip...")

	for _, r := range domain.Regions() {
		for _, d := range grid {
			data, err := domain.EncodeSnapshot(domain.NewSnapshot(r.ID, d))
			if err != nil {
				p.errorf("%s %+v: encode: %v", r.ID, d, err)
				continue
			}
			snap, ok := domain.DecodeSnapshot(data)
			if !ok {
				p.errorf("%s %+v: decode rejected its own encoding", r.ID, d)
				continue
			}
			if snap.Region != r.ID || *snap.Decisions != d {
				p.errorf("%s %+v: round trip produced %s %+v", r.ID, d, snap.Region, *snap.Decisions)
			}
		}
	}
	return p
}

// ── Fixtures ──

type regionFixture struct {
	Region   domain.Region   `json:"region"`
	Overview domain.Overview `json:"overview"`
	Series   []domain.Series `json:"series"`
}

type valueRange struct{ lo, hi float64 }

func seriesRange(regionID string, ds domain.Dataset) valueRange {
	switch ds {
	case domain.DatasetRainfall:
		switch regionID {
		case domain.RegionSouthAsia:
			return valueRange{0, 500}
		case domain.RegionAfrica:
			return valueRange{20, 70}
		default:
			return valueRange{50, 150}
		}
	case domain.DatasetSoil:
		return valueRange{0.1, 0.4}
	default:
		return valueRange{0.4, 0.8}
	}
}

func validateFixtures(dir string) *phase {
	p := &phase{name: "Fixtures"}
	fmt.Println("Phase 4: Fixtures...")

	for _, r := range domain.Regions() {
		fx, err := loadJSON[regionFixture](filepath.Join(dir, r.ID+".json"))
		if err != nil {
			p.errorf("%s: %v", r.ID, err)
			continue
		}
		if fx.Region.ID != r.ID {
			p.errorf("%s: fixture region %q", r.ID, fx.Region.ID)
		}
		if len(fx.Series) != 3 {
			p.errorf("%s: %d series, want 3", r.ID, len(fx.Series))
		}
		for _, s := range fx.Series {
			checkSeries(p, r.ID, s)
		}
	}

	events, err := loadJSON[[]domain.SimulationEvent](filepath.Join(dir, "simulation_events.json"))
	if err != nil {
		p.errorf("events: %v", err)
		return p
	}
	for i, ev := range events {
		if want := domain.Simulate(ev.Region, ev.Decisions); ev.Result != want {
			p.errorf("event %d (%s): result %+v, want %+v", i, ev.Region, ev.Result, want)
		}
		if want := domain.RatingFor(ev.Result.SustainabilityScore); ev.Rating != want {
			p.errorf("event %d (%s): rating %q, want %q", i, ev.Region, ev.Rating, want)
		}
	}
	return p
}

func checkSeries(p *phase, regionID string, s domain.Series) {
	if len(s.Points) != 12 {
		p.errorf("%s/%s: %d points, want 12", regionID, s.Dataset, len(s.Points))
	}
	rng := seriesRange(regionID, s.Dataset)
	for _, pt := range s.Points {
		if pt.Value < rng.lo || pt.Value > rng.hi {
			p.errorf("%s/%s %s: %.2f outside [%g, %g]", regionID, s.Dataset, pt.Month, pt.Value, rng.lo, rng.hi)
		}
	}
}

func loadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
