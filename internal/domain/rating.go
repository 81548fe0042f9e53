package domain

// Rating is the qualitative label for a sustainability score.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingFair             Rating = "Fair"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// RatingFor maps a sustainability score onto its rating. Thresholds are inclusive.
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingNeedsImprovement
	}
}
