// Package server exposes the chart-data API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jouni12787/gold-live-calculator/internal/chart"
	"github.com/jouni12787/gold-live-calculator/internal/model"
	"github.com/jouni12787/gold-live-calculator/internal/recorder"
)

// Server serves the chart-data endpoint and the static application shell.
type Server struct {
	port      int
	staticDir string
	service   *chart.Service
	recorder  recorder.Recorder
	server    *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(port int, staticDir string, svc *chart.Service, rec recorder.Recorder) *Server {
	return &Server{port: port, staticDir: staticDir, service: svc, recorder: rec}
}

// Handler builds the route table. Exposed separately so tests can drive it
// through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chart-data", s.handleChartData)
	mux.HandleFunc("/health", s.handleHealth)
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	return mux
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}
	log.Printf("[INFO] http server listening on :%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	key := r.URL.Query().Get("timeframe")

	res, err := s.service.ChartData(r.Context(), key)
	if err != nil {
		if errors.Is(err, chart.ErrUnsupportedTimeframe) {
			writeError(w, http.StatusBadRequest, "Unsupported timeframe")
			return
		}
		log.Printf("[ERROR] chart data for %q: %v", key, err)
		writeError(w, http.StatusBadGateway, "Chart data unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(model.ToChartPoints(res.Points)); err != nil {
		log.Printf("[ERROR] encode chart data: %v", err)
	}

	if err := s.recorder.RecordRequest(&recorder.RequestEvent{
		Timeframe:  res.Timeframe,
		Source:     string(res.Source),
		Points:     len(res.Points),
		DurationMs: time.Since(start).Milliseconds(),
	}); err != nil {
		log.Printf("[ERROR] record request: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
