package model

// Sample is one canonical chart point: epoch milliseconds and a finite price.
// Samples are only ever produced by the series normalizer; both fields are
// guaranteed finite.
type Sample struct {
	Timestamp int64
	Price     float64
}

// ChartPoint is the wire shape served to the chart client.
type ChartPoint struct {
	Timestamp int64   `json:"timestamp"`
	PriceUSD  float64 `json:"price_usd"`
}

// ToChartPoints converts a normalized series into the response payload.
func ToChartPoints(samples []Sample) []ChartPoint {
	points := make([]ChartPoint, len(samples))
	for i, s := range samples {
		points[i] = ChartPoint{Timestamp: s.Timestamp, PriceUSD: s.Price}
	}
	return points
}
