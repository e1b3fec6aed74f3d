package series

import (
	"time"

	"github.com/jouni12787/gold-live-calculator/internal/model"
)

// AnchorPolicy selects how a trailing window's reference time is chosen.
// The two policies must not be mixed silently; callers pick one per call site.
type AnchorPolicy int

const (
	// AnchorDataset anchors at the latest sample of the series being
	// filtered (used for cache-backed timeframes).
	AnchorDataset AnchorPolicy = iota
	// AnchorWallClock anchors at the current time (used when windowing
	// cache data in place of a real-time source).
	AnchorWallClock
)

// Window restricts a sorted series to the trailing duration d, anchored at the
// series' own latest sample (dataset-relative policy). An empty series falls
// back to the wall clock. d <= 0 means unbounded and returns a full copy.
func Window(s []model.Sample, d time.Duration) []model.Sample {
	anchor := time.Now().UnixMilli()
	if len(s) > 0 {
		anchor = s[len(s)-1].Timestamp
	}
	return windowFrom(s, d, anchor)
}

// WindowAt restricts a sorted series to the trailing duration d measured back
// from an explicit anchor (wall-clock policy; callers pass time.Now()).
func WindowAt(s []model.Sample, d time.Duration, anchor time.Time) []model.Sample {
	return windowFrom(s, d, anchor.UnixMilli())
}

func windowFrom(s []model.Sample, d time.Duration, anchorMs int64) []model.Sample {
	if d <= 0 {
		out := make([]model.Sample, len(s))
		copy(out, s)
		return out
	}
	cutoff := anchorMs - d.Milliseconds()
	out := make([]model.Sample, 0, len(s))
	for _, sample := range s {
		if sample.Timestamp >= cutoff {
			out = append(out, sample)
		}
	}
	return out
}
