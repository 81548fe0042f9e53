// Package game runs the farming simulation for HTTP players: it stores each
// run's decisions in the player's session and re-derives results from them.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/agroverse-service/internal/domain"
	"github.com/couchcryptid/agroverse-service/internal/observability"
	"github.com/couchcryptid/agroverse-service/internal/session"
)

var (
	ErrUnknownRegion  = errors.New("unknown region")
	ErrUnknownDataset = errors.New("unknown dataset")
)

// Results statuses.
const (
	StatusReady        = "ready"
	StatusAwaitingData = "awaiting_data"
)

// EventPublisher announces completed simulation runs.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.SimulationEvent) error
}

// Options tunes a Service. Zero values are usable.
type Options struct {
	// Delay is the pacing pause before RunSimulation returns.
	Delay time.Duration
	Clock clockwork.Clock
	// Seed for the mock satellite series; zero seeds from the clock.
	Seed uint64
}

// Service orchestrates the catalog, the scoring engine, and session storage.
type Service struct {
	store     session.Store
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	delay     time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a Service. Pass a nil publisher to disable event publishing.
func New(store session.Store, publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		delay:     opts.Delay,
		rng:       rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Regions lists the catalog.
func (s *Service) Regions() []domain.Region {
	return domain.Regions()
}

// Region returns one catalog entry.
func (s *Service) Region(id string) (domain.Region, error) {
	r, ok := domain.LookupRegion(id)
	if !ok {
		return domain.Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	return r, nil
}

// MenuOptions lists every decision menu.
type MenuOptions struct {
	Crops      []domain.Option `json:"crops"`
	Irrigation []domain.Option `json:"irrigation"`
	Fertilizer []domain.Option `json:"fertilizer"`
}

// DashboardView is what a player sees before running a simulation.
type DashboardView struct {
	RegionID   string          `json:"region_id"`
	RegionName string          `json:"region_name"`
	Defaults   domain.Decision `json:"defaults"`
	Options    MenuOptions     `json:"options"`
}

// Dashboard builds the decision-entry view. Unknown regions get an empty name.
func (s *Service) Dashboard(regionID string) DashboardView {
	return DashboardView{
		RegionID:   regionID,
		RegionName: domain.RegionName(regionID),
		Defaults:   domain.DefaultDecision(),
		Options: MenuOptions{
			Crops:      domain.CropOptions(),
			Irrigation: domain.IrrigationOptions(),
			Fertilizer: domain.FertilizerOptions(),
		},
	}
}

// Overview returns the dashboard summary card.
func (s *Service) Overview(regionID string) domain.Overview {
	return domain.RegionOverview(regionID)
}

// Dataset draws a fresh mock series for the region.
func (s *Service) Dataset(regionID, name string) (domain.Series, error) {
	ds, err := domain.ParseDataset(name)
	if err != nil {
		return domain.Series{}, fmt.Errorf("%w: %w", ErrUnknownDataset, err)
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domain.GenerateSeries(s.rng, regionID, ds), nil
}

// RunReceipt acknowledges an accepted run.
type RunReceipt struct {
	RegionID   string        `json:"region_id"`
	RegionName string        `json:"region_name"`
	Hints      []domain.Hint `json:"hints,omitempty"`
}

// RunSimulation stores the run in the player's session, publishes it, and
// waits out the pacing delay. If ctx ends during the delay the run is
// abandoned and ctx.Err() is returned; the stored snapshot is kept.
func (s *Service) RunSimulation(ctx context.Context, sessionID, regionID string, d domain.Decision) (RunReceipt, error) {
	start := s.clock.Now()

	data, err := domain.EncodeSnapshot(domain.NewSnapshot(regionID, d))
	if err != nil {
		return RunReceipt{}, err
	}
	if err := s.store.Put(ctx, sessionID, data); err != nil {
		s.metrics.SessionStoreErrors.WithLabelValues("put").Inc()
		return RunReceipt{}, fmt.Errorf("store snapshot: %w", err)
	}
	if counter, ok := s.store.(interface{ Len() int }); ok {
		s.metrics.SessionsActive.Set(float64(counter.Len()))
	}

	result := domain.Simulate(regionID, d)
	s.metrics.SimulationsTotal.WithLabelValues(regionLabel(regionID), cropLabel(d.Crop)).Inc()
	s.metrics.SustainabilityScore.Observe(float64(result.SustainabilityScore))

	s.publish(ctx, domain.NewSimulationEvent(sessionID, regionID, d, result))
	s.metrics.SimulationDuration.Observe(s.clock.Since(start).Seconds())

	s.logger.InfoContext(ctx, "simulation accepted",
		"region", regionID,
		"crop", d.Crop,
		"irrigation", d.Irrigation,
		"fertilizer", d.Fertilizer,
		"conservation", d.Conservation,
	)

	if err := s.pace(ctx); err != nil {
		s.logger.DebugContext(ctx, "simulation abandoned during pacing delay", "region", regionID)
		return RunReceipt{}, err
	}

	return RunReceipt{
		RegionID:   regionID,
		RegionName: domain.RegionName(regionID),
		Hints:      domain.Hints(d),
	}, nil
}

// Metric labels only carry catalog and menu values so player input cannot
// create new series.
const (
	unknownRegionLabel = "unknown"
	otherCropLabel     = "other"
)

func regionLabel(id string) string {
	if _, ok := domain.LookupRegion(id); ok {
		return id
	}
	return unknownRegionLabel
}

func cropLabel(c domain.Crop) string {
	if domain.KnownCrop(c) {
		return string(c)
	}
	return otherCropLabel
}

func (s *Service) publish(ctx context.Context, event domain.SimulationEvent) {
	if s.publisher == nil {
		s.metrics.EventsPublished.WithLabelValues("skipped").Inc()
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "publish simulation event failed", "error", err, "region", event.Region)
		return
	}
	s.metrics.EventsPublished.WithLabelValues("success").Inc()
}

func (s *Service) pace(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.delay):
		return nil
	}
}

// ResultsView is the outcome of the player's latest run, or an awaiting_data
// placeholder when there is nothing usable in the session.
type ResultsView struct {
	Status     string                   `json:"status"`
	RegionID   string                   `json:"region_id,omitempty"`
	RegionName string                   `json:"region_name,omitempty"`
	Decisions  *domain.Decision         `json:"decisions,omitempty"`
	Result     *domain.SimulationResult `json:"result,omitempty"`
	Rating     domain.Rating            `json:"rating,omitempty"`
	Insights   *domain.Insights         `json:"insights,omitempty"`
}

// Results re-derives the latest run from the stored snapshot. It never fails:
// a missing session, a malformed snapshot, or a store error all yield the
// awaiting_data view.
func (s *Service) Results(ctx context.Context, sessionID string) ResultsView {
	view, ok := s.results(ctx, sessionID)
	if !ok {
		view = ResultsView{Status: StatusAwaitingData}
	}
	s.metrics.ResultsServed.WithLabelValues(view.Status).Inc()
	return view
}

func (s *Service) results(ctx context.Context, sessionID string) (ResultsView, bool) {
	if sessionID == "" {
		return ResultsView{}, false
	}
	data, found, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.metrics.SessionStoreErrors.WithLabelValues("get").Inc()
		s.logger.WarnContext(ctx, "read session snapshot failed", "error", err)
		return ResultsView{}, false
	}
	if !found {
		return ResultsView{}, false
	}
	snap, ok := domain.DecodeSnapshot(data)
	if !ok {
		s.logger.DebugContext(ctx, "ignoring malformed session snapshot")
		return ResultsView{}, false
	}

	d := *snap.Decisions
	result := domain.Simulate(snap.Region, d)
	insights := domain.Analyze(d, result)

	return ResultsView{
		Status:     StatusReady,
		RegionID:   snap.Region,
		RegionName: domain.RegionName(snap.Region),
		Decisions:  &d,
		Result:     &result,
		Rating:     domain.RatingFor(result.SustainabilityScore),
		Insights:   &insights,
	}, true
}

// CheckReadiness reports whether the session store is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}
