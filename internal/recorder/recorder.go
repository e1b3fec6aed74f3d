package recorder

// RequestEvent records one served chart-data request.
type RequestEvent struct {
	Timeframe  string
	Source     string // cache, realtime, or fallback
	Points     int
	DurationMs int64
}

// SnapshotEvent records one observed price sample.
type SnapshotEvent struct {
	Timestamp int64 // epoch milliseconds
	PriceUSD  float64
	Source    string
}

// Recorder persists serving history for later analysis.
type Recorder interface {
	RecordRequest(evt *RequestEvent) error
	RecordSnapshot(evt *SnapshotEvent) error
	Close() error
}
