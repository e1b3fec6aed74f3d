// Package chart orchestrates the chart-data pipeline: source selection per
// timeframe, normalization, windowing, downsampling, and cache fallback.
package chart

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jouni12787/gold-live-calculator/internal/collector"
	"github.com/jouni12787/gold-live-calculator/internal/history"
	"github.com/jouni12787/gold-live-calculator/internal/model"
	"github.com/jouni12787/gold-live-calculator/internal/series"
)

// Result is a served series tagged with the source that actually produced it,
// so a degraded (fallback) response is distinguishable from a nominal one.
type Result struct {
	Timeframe string
	Source    SourceKind
	Points    []model.Sample
}

// Service selects a data source per requested timeframe and recovers from
// upstream failure by falling back to the historical dataset.
type Service struct {
	History *history.Loader
	Fetcher collector.Fetcher // nil when no real-time endpoint is configured
}

// NewService creates a Service. fetcher may be nil; real-time timeframes then
// always serve from cache.
func NewService(loader *history.Loader, fetcher collector.Fetcher) *Service {
	return &Service{History: loader, Fetcher: fetcher}
}

// ChartData resolves a timeframe key (case-insensitive, trimmed, empty means
// "all") and returns the chart-ready series for it.
func (s *Service) ChartData(ctx context.Context, key string) (*Result, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		key = "all"
	}
	tf, ok := Timeframes[key]
	if !ok {
		return nil, ErrUnsupportedTimeframe
	}

	if tf.Source == SourceRealtime {
		points, err := s.fetchRealtime(ctx, key, tf)
		if err == nil {
			return &Result{Timeframe: key, Source: SourceRealtime, Points: points}, nil
		}
		log.Printf("[WARN] real-time fetch for %q failed, falling back to cache: %v", key, err)
		points, err = s.fromCache(tf, series.AnchorWallClock)
		if err != nil {
			return nil, &SourceError{Source: SourceCache, Err: err}
		}
		return &Result{Timeframe: key, Source: SourceFallback, Points: points}, nil
	}

	points, err := s.fromCache(tf, series.AnchorDataset)
	if err != nil {
		return nil, &SourceError{Source: SourceCache, Err: err}
	}
	return &Result{Timeframe: key, Source: SourceCache, Points: points}, nil
}

// fromCache runs the cache pipeline: load, normalize, window with the given
// anchor policy, recover a sparse window, downsample.
func (s *Service) fromCache(tf Timeframe, anchor series.AnchorPolicy) ([]model.Sample, error) {
	raw, err := s.History.Load()
	if err != nil {
		return nil, err
	}
	normalized := series.Normalize(raw)

	var windowed []model.Sample
	if anchor == series.AnchorWallClock {
		// Wall-clock windowing stands in for a real-time source; stale
		// points outside the window must not be served.
		windowed = series.WindowAt(normalized, tf.Window, time.Now())
	} else {
		windowed = series.Window(normalized, tf.Window)

		// Sparse window: serve the tail of the full series instead.
		if len(windowed) < 2 && len(normalized) > len(windowed) {
			start := len(normalized) - tf.Limit
			if start < 0 {
				start = 0
			}
			windowed = normalized[start:]
		}
	}

	return series.Downsample(windowed, tf.Limit), nil
}

// fetchRealtime pulls the upstream series and bounds it to the timeframe's
// point limit, keeping the most recent points.
func (s *Service) fetchRealtime(ctx context.Context, key string, tf Timeframe) ([]model.Sample, error) {
	if s.Fetcher == nil {
		return nil, &SourceError{Source: SourceRealtime, Err: errNoFetcher}
	}
	raw, err := s.Fetcher.FetchSeries(ctx, key, tf.Granularity, tf.Limit)
	if err != nil {
		return nil, &SourceError{Source: SourceRealtime, Err: err}
	}
	points := series.Normalize(raw)
	if tf.Limit > 0 && len(points) > tf.Limit {
		points = points[len(points)-tf.Limit:]
	}
	return points, nil
}
