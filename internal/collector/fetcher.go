package collector

import "context"

// Fetcher defines the interface for fetching raw chart records from an
// upstream real-time feed.
type Fetcher interface {
	FetchSeries(ctx context.Context, timeframe, granularity string, limit int) ([]any, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Records []any
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, _, _ string, _ int) ([]any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}
