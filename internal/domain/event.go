package domain

import "time"

// SimulationEvent is published after each completed simulation run.
type SimulationEvent struct {
	SessionID   string           `json:"session_id"`
	Region      string           `json:"region"`
	Decisions   Decision         `json:"decisions"`
	Result      SimulationResult `json:"result"`
	Rating      Rating           `json:"rating"`
	ProcessedAt time.Time        `json:"processed_at"`
}

// NewSimulationEvent stamps a run with the current time.
func NewSimulationEvent(sessionID, regionID string, d Decision, r SimulationResult) SimulationEvent {
	return SimulationEvent{
		SessionID:   sessionID,
		Region:      regionID,
		Decisions:   d,
		Result:      r,
		Rating:      RatingFor(r.SustainabilityScore),
		ProcessedAt: clock.Now().UTC(),
	}
}
