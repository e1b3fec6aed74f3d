package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jouni12787/gold-live-calculator/internal/chart"
	"github.com/jouni12787/gold-live-calculator/internal/history"
	"github.com/jouni12787/gold-live-calculator/internal/model"
	"github.com/jouni12787/gold-live-calculator/internal/recorder"
)

func testHandler(t *testing.T, records []any) http.Handler {
	t.Helper()
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	svc := chart.NewService(history.NewLoader(path), nil)
	return NewServer(0, "", svc, recorder.NewNoopRecorder()).Handler()
}

func recentRecords(n int) []any {
	now := time.Now().UnixMilli()
	records := make([]any, n)
	for i := 0; i < n; i++ {
		records[i] = []any{float64(now - int64(n-1-i)*3600000), 1900 + float64(i)}
	}
	return records
}

func TestChartData_BogusTimeframe(t *testing.T) {
	h := testHandler(t, recentRecords(10))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart-data?timeframe=bogus", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Unsupported timeframe" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestChartData_AllTimeframe(t *testing.T) {
	h := testHandler(t, recentRecords(10))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart-data?timeframe=all", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var points []model.ChartPoint
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("expected 10 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i-1].Timestamp >= points[i].Timestamp {
			t.Fatalf("points not ascending at %d", i)
		}
	}
}

func TestChartData_RealtimeUnreachableServesCache(t *testing.T) {
	// No fetcher configured: the 24h timeframe must still answer 200 from
	// the cached dataset, windowed to the last 24 hours.
	h := testHandler(t, recentRecords(48))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart-data?timeframe=24h", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var points []model.ChartPoint
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("expected cached points")
	}
	if limit := 96; len(points) > limit {
		t.Errorf("expected at most %d points, got %d", limit, len(points))
	}
	cutoff := time.Now().Add(-25 * time.Hour).UnixMilli()
	for _, p := range points {
		if p.Timestamp < cutoff {
			t.Errorf("point outside 24h window: %d", p.Timestamp)
		}
	}
}

func TestChartData_MissingHistoryIsBadGateway(t *testing.T) {
	svc := chart.NewService(history.NewLoader(filepath.Join(t.TempDir(), "missing.json")), nil)
	h := NewServer(0, "", svc, recorder.NewNoopRecorder()).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart-data?timeframe=all", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t, recentRecords(1))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
