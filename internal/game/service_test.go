package game_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/agroverse-service/internal/domain"
	"github.com/couchcryptid/agroverse-service/internal/game"
	"github.com/couchcryptid/agroverse-service/internal/observability"
	"github.com/couchcryptid/agroverse-service/internal/session"
)

// --- mocks ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.SimulationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.SimulationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

type failingStore struct {
	err error
}

func (f *failingStore) Put(context.Context, string, []byte) error { return f.err }
func (f *failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, f.err
}
func (f *failingStore) Ping(context.Context) error { return f.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(store session.Store, pub game.EventPublisher, opts game.Options) *game.Service {
	return game.New(store, pub, discardLogger(), observability.NewMetricsForTesting(), opts)
}

func newMemoryStore() *session.MemoryStore {
	return session.NewMemoryStore(100, time.Hour, nil)
}

// --- tests ---

func TestService_RunThenResults(t *testing.T) {
	store := newMemoryStore()
	pub := &recordingPublisher{}
	svc := newService(store, pub, game.Options{})
	ctx := context.Background()

	receipt, err := svc.RunSimulation(ctx, "sess-1", "south-asia", domain.DefaultDecision())
	require.NoError(t, err)
	assert.Equal(t, "South Asia", receipt.RegionName)
	assert.Empty(t, receipt.Hints)

	view := svc.Results(ctx, "sess-1")
	require.Equal(t, game.StatusReady, view.Status)
	assert.Equal(t, "south-asia", view.RegionID)
	assert.Equal(t, "South Asia", view.RegionName)
	assert.Equal(t, domain.SimulationResult{Yield: 115, WaterUsage: 120, SoilHealth: 70, Profit: 910, SustainabilityScore: 85}, *view.Result)
	assert.Equal(t, domain.RatingExcellent, view.Rating)
	require.NotNil(t, view.Insights)
	assert.Contains(t, view.Insights.Assessment, "wheat")

	require.Len(t, pub.events, 1)
	assert.Equal(t, "sess-1", pub.events[0].SessionID)
	assert.Equal(t, 85, pub.events[0].Result.SustainabilityScore)
}

func TestService_ResultsRecomputedFromStoredDecisions(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store, nil, game.Options{})
	ctx := context.Background()

	// A snapshot written by an earlier process carries no result; the view derives it.
	require.NoError(t, store.Put(ctx, "sess-1",
		[]byte(`{"region":"africa","decisions":{"crop":"rice","irrigation":"high","fertilizer":"synthetic-high","conservation":false}}`)))

	view := svc.Results(ctx, "sess-1")
	require.Equal(t, game.StatusReady, view.Status)
	assert.Equal(t, domain.SimulationResult{Yield: 195, WaterUsage: 200, SoilHealth: 30, Profit: 1550, SustainabilityScore: 15}, *view.Result)
	assert.Equal(t, domain.RatingNeedsImprovement, view.Rating)
}

func TestService_LatestRunOverwritesSnapshot(t *testing.T) {
	svc := newService(newMemoryStore(), nil, game.Options{})
	ctx := context.Background()

	_, err := svc.RunSimulation(ctx, "sess-1", "europe", domain.DefaultDecision())
	require.NoError(t, err)
	_, err = svc.RunSimulation(ctx, "sess-1", "mars", domain.Decision{Crop: domain.CropRice, Irrigation: domain.IrrigationHigh, Fertilizer: domain.FertilizerSyntheticHigh})
	require.NoError(t, err)

	view := svc.Results(ctx, "sess-1")
	assert.Equal(t, "mars", view.RegionID)
	assert.Equal(t, 195, view.Result.Yield)
}

func TestService_ResultsAwaitingData(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store, nil, game.Options{})
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "broken", []byte(`{"region":`)))
	require.NoError(t, store.Put(ctx, "nodecisions", []byte(`{"region":"africa"}`)))

	for _, id := range []string{"", "unknown", "broken", "nodecisions"} {
		view := svc.Results(ctx, id)
		assert.Equal(t, game.ResultsView{Status: game.StatusAwaitingData}, view, "session %q", id)
	}

	// Stable across repeated reads.
	assert.Equal(t, game.StatusAwaitingData, svc.Results(ctx, "unknown").Status)
}

func TestService_ResultsStoreErrorAwaitsData(t *testing.T) {
	svc := newService(&failingStore{err: errors.New("connection refused")}, nil, game.Options{})
	view := svc.Results(context.Background(), "sess-1")
	assert.Equal(t, game.StatusAwaitingData, view.Status)
}

func TestService_RunStoreErrorIsReturned(t *testing.T) {
	svc := newService(&failingStore{err: errors.New("connection refused")}, nil, game.Options{})
	_, err := svc.RunSimulation(context.Background(), "sess-1", "europe", domain.DefaultDecision())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store snapshot")
}

func TestService_PublishFailureDoesNotFailRun(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newService(newMemoryStore(), pub, game.Options{})
	ctx := context.Background()

	_, err := svc.RunSimulation(ctx, "sess-1", "europe", domain.DefaultDecision())
	require.NoError(t, err)
	assert.Equal(t, game.StatusReady, svc.Results(ctx, "sess-1").Status)
}

func TestService_UnknownRegionAndValues(t *testing.T) {
	svc := newService(newMemoryStore(), nil, game.Options{})
	ctx := context.Background()

	receipt, err := svc.RunSimulation(ctx, "sess-1", "atlantis", domain.Decision{Crop: "wheet", Irrigation: domain.IrrigationMedium, Fertilizer: domain.FertilizerNone})
	require.NoError(t, err)
	assert.Empty(t, receipt.RegionName)
	require.Len(t, receipt.Hints, 1)
	assert.Equal(t, "wheat", receipt.Hints[0].Suggestion)

	view := svc.Results(ctx, "sess-1")
	require.Equal(t, game.StatusReady, view.Status)
	assert.Empty(t, view.RegionName)
	assert.Equal(t, 115, view.Result.Yield)
}

func TestService_PacingDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newService(newMemoryStore(), nil, game.Options{Delay: 1500 * time.Millisecond, Clock: clock})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunSimulation(ctx, "sess-1", "europe", domain.DefaultDecision())
		done <- err
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// The snapshot is written before the delay starts.
	assert.Equal(t, game.StatusReady, svc.Results(ctx, "sess-1").Status)

	select {
	case <-done:
		t.Fatal("run returned before the pacing delay elapsed")
	default:
	}

	clock.Advance(1500 * time.Millisecond)
	require.NoError(t, <-done)
}

func TestService_PacingDelayAbandoned(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newService(newMemoryStore(), nil, game.Options{Delay: 1500 * time.Millisecond, Clock: clock})

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	runCtx, cancelRun := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunSimulation(runCtx, "sess-1", "europe", domain.DefaultDecision())
		done <- err
	}()

	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	cancelRun()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, game.StatusReady, svc.Results(context.Background(), "sess-1").Status)
}

func TestService_Region(t *testing.T) {
	svc := newService(newMemoryStore(), nil, game.Options{})

	r, err := svc.Region("mars")
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyExpert, r.Difficulty)

	_, err = svc.Region("atlantis")
	require.ErrorIs(t, err, game.ErrUnknownRegion)
	assert.Len(t, svc.Regions(), 6)
}

func TestService_Dashboard(t *testing.T) {
	svc := newService(newMemoryStore(), nil, game.Options{})

	view := svc.Dashboard("north-america")
	assert.Equal(t, "North America", view.RegionName)
	assert.Equal(t, domain.DefaultDecision(), view.Defaults)
	assert.Len(t, view.Options.Crops, 6)
	assert.Len(t, view.Options.Irrigation, 4)
	assert.Len(t, view.Options.Fertilizer, 5)

	assert.Empty(t, svc.Dashboard("atlantis").RegionName)
}

func TestService_Dataset(t *testing.T) {
	a := newService(newMemoryStore(), nil, game.Options{Seed: 99})
	b := newService(newMemoryStore(), nil, game.Options{Seed: 99})

	sa, err := a.Dataset("south-asia", "rainfall")
	require.NoError(t, err)
	sb, err := b.Dataset("south-asia", "rainfall")
	require.NoError(t, err)
	assert.Equal(t, sa, sb, "same seed should give the same series")
	assert.Len(t, sa.Points, 12)

	_, err = a.Dataset("south-asia", "temperature")
	require.ErrorIs(t, err, game.ErrUnknownDataset)

	assert.Contains(t, a.Overview("africa").RegionalOutlook, "drought")
}

func TestService_CheckReadiness(t *testing.T) {
	ok := newService(newMemoryStore(), nil, game.Options{})
	assert.NoError(t, ok.CheckReadiness(context.Background()))

	down := newService(&failingStore{err: errors.New("connection refused")}, nil, game.Options{})
	err := down.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session store")
}

func TestService_SimulationMetricLabelsStayBounded(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	svc := game.New(newMemoryStore(), nil, discardLogger(), metrics, game.Options{})
	ctx := context.Background()

	for i := range 200 {
		d := domain.DefaultDecision()
		d.Crop = domain.Crop(fmt.Sprintf("crop-%d", i))
		_, err := svc.RunSimulation(ctx, "sess-1", fmt.Sprintf("region-%d", i), d)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.SimulationsTotal))
	assert.InDelta(t, 200, testutil.ToFloat64(metrics.SimulationsTotal.WithLabelValues("unknown", "other")), 0)

	_, err := svc.RunSimulation(ctx, "sess-1", "mars", domain.DefaultDecision())
	require.NoError(t, err)
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.SimulationsTotal))
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SimulationsTotal.WithLabelValues("mars", "wheat")), 0)
}
