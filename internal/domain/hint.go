package domain

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Hint suggests a known value for an unrecognized decision field.
type Hint struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Hints reports every field of d that is outside its menu. Fields that are
// recognized produce no hint. Scoring is unaffected either way.
func Hints(d Decision) []Hint {
	var out []Hint
	if !KnownCrop(d.Crop) {
		out = append(out, Hint{Field: "crop", Value: string(d.Crop), Suggestion: closest(string(d.Crop), CropOptions())})
	}
	if !known(string(d.Irrigation), IrrigationOptions()) {
		out = append(out, Hint{Field: "irrigation", Value: string(d.Irrigation), Suggestion: closest(string(d.Irrigation), IrrigationOptions())})
	}
	if !known(string(d.Fertilizer), FertilizerOptions()) {
		out = append(out, Hint{Field: "fertilizer", Value: string(d.Fertilizer), Suggestion: closest(string(d.Fertilizer), FertilizerOptions())})
	}
	return out
}

func known(v string, opts []Option) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// closest returns the option nearest to v by edit distance, or "" when
// nothing is within the length-scaled limit.
func closest(v string, opts []Option) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, o := range opts {
		dist := levenshtein.ComputeDistance(v, o.Value)
		if dist > distanceLimit(len(o.Value)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = o.Value, dist
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
