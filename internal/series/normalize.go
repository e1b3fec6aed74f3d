package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jouni12787/gold-live-calculator/internal/model"
)

// Raw records arrive either as [timestamp, price] pairs or as keyed objects.
// Field aliases are resolved in this order; the positional key ("0"/"1") is
// always tried last.
var (
	timestampAliases = []string{"timestamp", "time", "t", "date", "0"}
	priceAliases     = []string{"price_usd", "price", "value", "usd", "p", "close", "1"}
)

// Date layouts attempted for string timestamps that are not plain numbers.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts a raw collection into a canonical series: each record is
// coerced into a Sample or dropped, then the survivors are sorted ascending by
// timestamp and deduplicated, keeping the last record seen for a timestamp.
func Normalize(raw []any) []model.Sample {
	samples := make([]model.Sample, 0, len(raw))
	for _, rec := range raw {
		if s, ok := normalizePoint(rec); ok {
			samples = append(samples, s)
		}
	}

	// Stable sort so later input wins on equal timestamps.
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Timestamp < samples[j].Timestamp
	})

	out := samples[:0]
	for _, s := range samples {
		if n := len(out); n > 0 && out[n-1].Timestamp == s.Timestamp {
			out[n-1] = s
			continue
		}
		out = append(out, s)
	}
	return out
}

// normalizePoint coerces one raw record. Invalid records report ok=false and
// are excluded rather than surfaced as errors.
func normalizePoint(raw any) (model.Sample, bool) {
	switch rec := raw.(type) {
	case []any:
		if len(rec) < 2 {
			return model.Sample{}, false
		}
		return buildSample(rec[0], rec[1])
	case map[string]any:
		// A "value" field may itself hold a [timestamp, price] pair that
		// supplies both fields on its own.
		if pair, isPair := rec["value"].([]any); isPair {
			return normalizePoint(pair)
		}
		tsVal, ok := resolveAlias(rec, timestampAliases)
		if !ok {
			return model.Sample{}, false
		}
		priceVal, ok := resolveAlias(rec, priceAliases)
		if !ok {
			return model.Sample{}, false
		}
		return buildSample(tsVal, priceVal)
	default:
		return model.Sample{}, false
	}
}

func buildSample(tsVal, priceVal any) (model.Sample, bool) {
	ts, ok := coerceTimestamp(tsVal)
	if !ok {
		return model.Sample{}, false
	}
	price, ok := coercePrice(priceVal)
	if !ok {
		return model.Sample{}, false
	}
	return model.Sample{Timestamp: ts, Price: price}, true
}

func resolveAlias(rec map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := rec[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Numeric timestamps at or below this magnitude are epoch seconds; above it
// they are already milliseconds. Epoch seconds stay below 1e10 until the year
// 2286, epoch milliseconds passed 1e12 in 2001.
const millisecondThreshold = 1e10

// coerceTimestamp yields epoch milliseconds. Strings try numeric coercion
// first, then calendar date parsing.
func coerceTimestamp(v any) (int64, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli(), true
	case float64:
		return numericTimestamp(t)
	case int:
		return numericTimestamp(float64(t))
	case int64:
		return numericTimestamp(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return numericTimestamp(f)
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UnixMilli(), true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func numericTimestamp(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > millisecondThreshold {
		return int64(math.Round(f)), true
	}
	return int64(math.Round(f * 1000)), true
}

func coercePrice(v any) (float64, bool) {
	switch p := v.(type) {
	case float64:
		return p, !math.IsNaN(p) && !math.IsInf(p, 0)
	case int:
		return float64(p), true
	case int64:
		return float64(p), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
