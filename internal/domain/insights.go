package domain

import (
	"fmt"
	"strings"
)

// Insights is the narrative feedback shown next to a result.
type Insights struct {
	Assessment      string   `json:"assessment"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
	WaterLabel      string   `json:"water_label"`
}

// Analyze builds narrative feedback for a decision and its result.
func Analyze(d Decision, r SimulationResult) Insights {
	rating := RatingFor(r.SustainabilityScore)

	in := Insights{
		Assessment: fmt.Sprintf("Your %s cultivation achieved a %s sustainability rating of %d/100.",
			d.Crop, strings.ToLower(string(rating)), r.SustainabilityScore),
		Strengths:       []string{},
		Recommendations: []string{},
		WaterLabel:      WaterUsageLabel(r.WaterUsage),
	}

	if r.SustainabilityScore >= 60 {
		in.Strengths = append(in.Strengths, "Excellent balance between productivity and environmental impact.")
	}
	if d.Conservation {
		in.Strengths = append(in.Strengths, "Conservation practices significantly improved soil health.")
	}
	if r.WaterUsage < 100 {
		in.Strengths = append(in.Strengths, "Efficient water management reduced resource strain.")
	}

	if r.SoilHealth < 50 {
		in.Recommendations = append(in.Recommendations, "Consider adding more organic matter to improve soil health.")
	}
	if r.WaterUsage > 150 {
		in.Recommendations = append(in.Recommendations, "Explore drip irrigation to reduce water consumption.")
	}
	if !d.Conservation {
		in.Recommendations = append(in.Recommendations, "Implementing conservation practices could boost long-term sustainability.")
	}

	return in
}

// WaterUsageLabel describes a water usage figure in mm.
func WaterUsageLabel(mm int) string {
	switch {
	case mm < 100:
		return "Efficient water management"
	case mm < 150:
		return "Moderate water usage"
	default:
		return "High water consumption"
	}
}
