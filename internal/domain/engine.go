package domain

import (
	"math"
	"strings"
)

// SimulationResult is the scored outcome of one run.
type SimulationResult struct {
	Yield               int `json:"yield"`
	WaterUsage          int `json:"waterUsage"`
	SoilHealth          int `json:"soilHealth"`
	Profit              int `json:"profit"`
	SustainabilityScore int `json:"sustainabilityScore"`
}

const (
	baseWaterUsage     = 100
	baseSoilHealth     = 50
	baseSustainability = 50
)

var cropMultipliers = map[Crop]float64{
	CropWheat:      1.0,
	CropRice:       1.2,
	CropCorn:       1.1,
	CropSorghum:    0.9,
	CropMillet:     0.85,
	CropVegetables: 1.3,
}

// fertilizerEffect is applied when a fertilizer tag contains match.
type fertilizerEffect struct {
	match          Fertilizer
	multiplier     float64
	soil           int
	sustainability int
}

// fertilizerEffects is evaluated in order and the first match wins.
var fertilizerEffects = []fertilizerEffect{
	{match: FertilizerSyntheticHigh, multiplier: 1.25, soil: -20, sustainability: -20},
	{match: FertilizerSyntheticLow, multiplier: 1.1, soil: -10, sustainability: -10},
	{match: FertilizerOrganicMedium, multiplier: 1.05, soil: 10, sustainability: 10},
	{match: FertilizerOrganicLow, multiplier: 1.0, soil: 5, sustainability: 15},
}

// Simulate scores a decision set for a region. The region does not affect any
// coefficient today.
func Simulate(_ string, d Decision) SimulationResult {
	return Compute(d)
}

// Compute scores a decision set. It is a total function: unknown values score
// as the neutral choice instead of failing.
func Compute(d Decision) SimulationResult {
	multiplier := 1.0
	water := baseWaterUsage
	soil := baseSoilHealth
	sustainability := baseSustainability

	multiplier *= CropMultiplier(d.Crop)

	switch d.Irrigation {
	case IrrigationHigh:
		multiplier *= 1.3
		water = 200
		sustainability -= 15
	case IrrigationMedium:
		multiplier *= 1.15
		water = 120
		sustainability += 5
	case IrrigationLow:
		multiplier *= 0.95
		water = 70
		sustainability += 10
	default:
		multiplier *= 0.8
		water = 40
		sustainability += 20
	}

	if eff, ok := matchFertilizer(d.Fertilizer); ok {
		multiplier *= eff.multiplier
		soil += eff.soil
		sustainability += eff.sustainability
	}

	if d.Conservation {
		soil += 15
		sustainability += 15
	}

	yield := roundHalfUp(multiplier * 100)
	profit := roundHalfUp(float64(yield*10 - water*2))

	return SimulationResult{
		Yield:               yield,
		WaterUsage:          water,
		SoilHealth:          clampScore(soil),
		Profit:              profit,
		SustainabilityScore: clampScore(sustainability),
	}
}

// CropMultiplier returns the yield multiplier for a crop, 1.0 when unknown.
func CropMultiplier(c Crop) float64 {
	if m, ok := cropMultipliers[c]; ok {
		return m
	}
	return 1.0
}

// KnownCrop reports whether c is on the crop menu.
func KnownCrop(c Crop) bool {
	_, ok := cropMultipliers[c]
	return ok
}

func matchFertilizer(tag Fertilizer) (fertilizerEffect, bool) {
	for _, eff := range fertilizerEffects {
		if strings.Contains(string(tag), string(eff.match)) {
			return eff, true
		}
	}
	return fertilizerEffect{}, false
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampScore(v int) int {
	return max(0, min(100, v))
}
