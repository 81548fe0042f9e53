package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/agroverse-service/internal/domain"
	"github.com/couchcryptid/agroverse-service/internal/game"
)

// SessionCookie carries the player's session id.
const SessionCookie = "agroverse_session"

const maxBodyBytes = 64 << 10

// Game is the simulation surface served over HTTP.
type Game interface {
	Regions() []domain.Region
	Region(id string) (domain.Region, error)
	Dashboard(regionID string) game.DashboardView
	Overview(regionID string) domain.Overview
	Dataset(regionID, name string) (domain.Series, error)
	RunSimulation(ctx context.Context, sessionID, regionID string, d domain.Decision) (game.RunReceipt, error)
	Results(ctx context.Context, sessionID string) game.ResultsView
	CheckReadiness(ctx context.Context) error
}

// Server exposes the game API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	game       Game
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api routes, /healthz, /readyz, and /metrics.
func NewServer(addr string, g Game, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		game:   g,
		logger: logger,
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(g))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(requestLogger(logger))
		r.Get("/", s.handleLanding)
		r.Get("/about", s.handleAbout)
		r.Get("/regions", s.handleRegions)
		r.Get("/regions/{regionID}", s.handleRegion)
		r.Route("/dashboard/{regionID}", func(r chi.Router) {
			r.Get("/", s.handleDashboard)
			r.Get("/datasets/{dataset}", s.handleDataset)
			r.Post("/simulate", s.handleSimulate)
		})
		r.Get("/results", s.handleResults)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(g Game) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := g.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleLanding(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.LandingSummary())
}

func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.AboutPage())
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"regions": s.game.Regions()})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	region, err := s.game.Region(chi.URLParam(r, "regionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, region)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Dashboard(chi.URLParam(r, "regionID")))
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "regionID")
	name := chi.URLParam(r, "dataset")

	if name == "overview" {
		writeJSON(w, http.StatusOK, s.game.Overview(regionID))
		return
	}

	series, err := s.game.Dataset(regionID, name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regionID := chi.URLParam(r, "regionID")

	d, err := decodeDecision(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body must be a JSON decision"})
		return
	}

	sessionID := ensureSession(w, r)

	receipt, err := s.game.RunSimulation(ctx, sessionID, regionID, d)
	if err != nil {
		if ctx.Err() != nil {
			// Client navigated away during the pacing delay.
			return
		}
		s.logger.ErrorContext(ctx, "run simulation failed", "error", err, "region", regionID)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// decodeDecision reads exactly one JSON object. Trailing data and fields of
// the wrong JSON type are rejected; unknown field values are not.
func decodeDecision(body io.Reader) (domain.Decision, error) {
	var d domain.Decision
	dec := json.NewDecoder(body)
	if err := dec.Decode(&d); err != nil {
		return domain.Decision{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Decision{}, errors.New("unexpected data after decision")
	}
	return d, nil
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Results(r.Context(), sessionID(r)))
}

// sessionID returns the id from the session cookie, or "" when the cookie is
// missing or not a uuid.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// ensureSession returns the request's session id, issuing a new cookie if needed.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.DebugContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, game.ErrUnknownRegion):
		msg = "region not found"
	case errors.Is(err, game.ErrUnknownDataset):
		msg = "dataset not found"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
