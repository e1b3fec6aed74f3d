package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// fetchTimeout bounds each upstream request; exceeding it cancels the
// in-flight request.
const fetchTimeout = 10 * time.Second

// StatusError reports a non-success HTTP status from the upstream feed.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Status)
}

// RealTimeFetcher implements Fetcher against a configured upstream price feed.
type RealTimeFetcher struct {
	Endpoint string
	Client   *http.Client
}

// NewRealTimeFetcher creates a fetcher with optional proxy support.
func NewRealTimeFetcher(endpoint, proxyURL string) *RealTimeFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RealTimeFetcher{
		Endpoint: endpoint,
		Client: &http.Client{
			Timeout:   fetchTimeout,
			Transport: transport,
		},
	}
}

func (f *RealTimeFetcher) Name() string { return "realtime" }

// FetchSeries requests raw records for one timeframe. The payload's data
// array is accepted at the top level or under the conventional "data" or
// "result" keys.
func (f *RealTimeFetcher) FetchSeries(ctx context.Context, timeframe, granularity string, limit int) ([]any, error) {
	if f.Endpoint == "" {
		return nil, fmt.Errorf("real-time endpoint not configured")
	}

	query := url.Values{}
	query.Set("timeframe", timeframe)
	if granularity != "" {
		query.Set("granularity", granularity)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	endpoint := f.Endpoint + "?" + query.Encode()

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	return locateRecords(payload)
}

// locateRecords finds the raw record array within an upstream payload.
func locateRecords(payload any) ([]any, error) {
	switch p := payload.(type) {
	case []any:
		return p, nil
	case map[string]any:
		for _, key := range []string{"data", "result"} {
			if arr, ok := p[key].([]any); ok {
				return arr, nil
			}
		}
	}
	return nil, fmt.Errorf("malformed upstream payload: no data array")
}
