//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	httpadapter "github.com/couchcryptid/agroverse-service/internal/adapter/http"
	"github.com/couchcryptid/agroverse-service/internal/adapter/kafka"
	"github.com/couchcryptid/agroverse-service/internal/config"
	"github.com/couchcryptid/agroverse-service/internal/domain"
	"github.com/couchcryptid/agroverse-service/internal/game"
	"github.com/couchcryptid/agroverse-service/internal/observability"
	"github.com/couchcryptid/agroverse-service/internal/session"
)

const testTopic = "test-simulation-events"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestSimulatePublishesEvent drives a run through the HTTP API and reads the
// resulting event back from Kafka.
func TestSimulatePublishesEvent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	publisher := kafka.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	svc := game.New(session.NewMemoryStore(10, time.Hour, nil), publisher, discardLogger(),
		observability.NewMetricsForTesting(), game.Options{Seed: 1})
	srv := httpadapter.NewServer(":0", svc, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/europe/simulate",
		strings.NewReader(`{"crop":"vegetables","irrigation":"none","fertilizer":"organic-medium","conservation":true}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionID string
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpadapter.SessionCookie {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read simulation event")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, sessionID, string(msg.Key))
	assert.Equal(t, kafka.EventType, headers["event_type"])
	assert.Equal(t, "europe", headers["region"])
	assert.NotEmpty(t, headers["processed_at"])

	var event domain.SimulationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, domain.SimulationResult{Yield: 109, WaterUsage: 40, SoilHealth: 75, Profit: 1010, SustainabilityScore: 95}, event.Result)
	assert.Equal(t, domain.RatingExcellent, event.Rating)
}
