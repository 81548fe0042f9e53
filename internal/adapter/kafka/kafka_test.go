package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/agroverse-service/internal/domain"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	calls  int
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testEvent() domain.SimulationEvent {
	return domain.SimulationEvent{
		SessionID: "sess-1",
		Region:    "africa",
		Decisions: domain.Decision{
			Crop:         domain.CropMillet,
			Irrigation:   domain.IrrigationLow,
			Fertilizer:   domain.FertilizerSyntheticLow,
			Conservation: true,
		},
		Result:      domain.SimulationResult{Yield: 89, WaterUsage: 70, SoilHealth: 55, Profit: 750, SustainabilityScore: 65},
		Rating:      domain.RatingGood,
		ProcessedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSerializeToMessage(t *testing.T) {
	event := testEvent()

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("sess-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"sustainabilityScore":65`)
	assert.Contains(t, string(msg.Value), `"crop":"millet"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(EventType), msg.Headers[0].Value)
	assert.Equal(t, "region", msg.Headers[1].Key)
	assert.Equal(t, []byte("africa"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(event.ProcessedAt.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestPublishWritesMessage(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, discardLogger())

	require.NoError(t, p.Publish(context.Background(), testEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("sess-1"), w.msgs[0].Key)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newPublisher(w, discardLogger())

	err := p.Publish(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestPublishBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newPublisher(w, discardLogger())
	ctx := context.Background()

	for range breakerFailures {
		require.Error(t, p.Publish(ctx, testEvent()))
	}
	assert.Equal(t, breakerFailures, w.calls)

	err := p.Publish(ctx, testEvent())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, breakerFailures, w.calls, "open breaker should not reach the writer")
}
