// Package domain models the AgroVerse farming simulation: the region catalog,
// the player's farming decisions, and the scoring engine that turns a decision
// set into an outcome.
//
// # Decisions
//
// A decision set has four parts, each chosen from a fixed menu:
//
//	crop:         wheat | rice | corn | sorghum | millet | vegetables
//	irrigation:   none | low | medium | high
//	fertilizer:   none | organic-low | organic-medium | synthetic-low | synthetic-high
//	conservation: true | false
//
// Values outside these menus are accepted. They score as the neutral choice
// (crop multiplier 1.0, irrigation treated as "none", fertilizer leaves the
// running totals untouched) so an unknown value never fails a run.
//
// # Scoring
//
// Starting point: yield multiplier 1.0, water 100 mm, soil health 50,
// sustainability 50.
//
//	Crop multiplier:  wheat 1.0 | rice 1.2 | corn 1.1 | sorghum 0.9 | millet 0.85 | vegetables 1.3
//
//	Irrigation (exactly one tier applies):
//	  high    x1.30  water 200  sustainability -15
//	  medium  x1.15  water 120  sustainability +5
//	  low     x0.95  water  70  sustainability +10
//	  other   x0.80  water  40  sustainability +20
//
//	Fertilizer (substring match, first hit wins, in this order):
//	  synthetic-high  x1.25  soil -20  sustainability -20
//	  synthetic-low   x1.10  soil -10  sustainability -10
//	  organic-medium  x1.05  soil +10  sustainability +10
//	  organic-low            soil  +5  sustainability +15
//
//	Conservation practices: soil +15, sustainability +15.
//
// Yield is the multiplier scaled to a base of 100 and rounded half up. Profit
// is yield*10 - water*2 and may be negative. Only soil health and the
// sustainability score are clamped into [0, 100].
//
// The region id is carried alongside the decision but does not change any
// coefficient; regions only label the run.
//
// # Sustainability rating
//
//	score >= 80 Excellent | >= 60 Good | >= 40 Fair | otherwise Needs Improvement
//
// # Satellite datasets
//
// Dashboard charts show generated monthly series, not real observations. They
// are shaped per region (a June-October monsoon for South Asia, flat low
// rainfall for Sub-Saharan Africa) and feed nothing downstream.
package domain
