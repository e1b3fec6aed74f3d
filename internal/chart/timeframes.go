package chart

import "time"

// SourceKind classifies where a timeframe's data comes from.
type SourceKind string

const (
	// SourceCache marks a series served from the historical dataset.
	SourceCache SourceKind = "cache"
	// SourceRealtime marks a series served from the upstream feed.
	SourceRealtime SourceKind = "realtime"
	// SourceFallback marks a cache-served series that replaced a failed
	// real-time attempt.
	SourceFallback SourceKind = "fallback"
)

// Timeframe is one selectable chart range. Window <= 0 means unbounded.
type Timeframe struct {
	Source      SourceKind
	Window      time.Duration
	Limit       int
	Granularity string
}

const day = 24 * time.Hour

// Timeframes maps each supported key (lowercase) to its configuration.
// Static and read-only.
var Timeframes = map[string]Timeframe{
	"all":  {Source: SourceCache, Limit: 500},
	"long": {Source: SourceCache, Limit: 500},
	"max":  {Source: SourceCache, Limit: 500},
	"1y":   {Source: SourceCache, Window: 365 * day, Limit: 365},
	"1y+":  {Source: SourceCache, Window: 730 * day, Limit: 500},

	"1h":  {Source: SourceRealtime, Window: time.Hour, Limit: 60, Granularity: "1m"},
	"6h":  {Source: SourceRealtime, Window: 6 * time.Hour, Limit: 72, Granularity: "5m"},
	"24h": {Source: SourceRealtime, Window: 24 * time.Hour, Limit: 96, Granularity: "15m"},
}
