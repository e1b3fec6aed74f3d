package chart

import (
	"errors"
	"fmt"
)

// ErrUnsupportedTimeframe rejects an unrecognized timeframe key. It is the
// only client-surfaced error; everything else is a source failure.
var ErrUnsupportedTimeframe = errors.New("unsupported timeframe")

var errNoFetcher = errors.New("real-time endpoint not configured")

// SourceError reports a data source failure that reached the orchestrator
// boundary without a successful fallback.
type SourceError struct {
	Source SourceKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
