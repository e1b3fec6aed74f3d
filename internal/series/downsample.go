package series

import (
	"sort"

	"github.com/jouni12787/gold-live-calculator/internal/model"
)

// Downsample reduces a sorted series to roughly limit points for display.
// Every stride-th sample is kept starting at index 0, then the true last
// point and the global minimum- and maximum-price samples are forced in, so
// the output may exceed limit by up to 3 points. Endpoints and price extremes
// of the input always survive.
func Downsample(s []model.Sample, limit int) []model.Sample {
	if limit < 1 || len(s) <= limit {
		return s
	}

	stride := (len(s) + limit - 1) / limit
	out := make([]model.Sample, 0, limit+3)
	for i := 0; i < len(s); i += stride {
		out = append(out, s[i])
	}

	last := s[len(s)-1]
	if out[len(out)-1] != last {
		out = append(out, last)
	}

	lo, hi := s[0], s[0]
	for _, sample := range s[1:] {
		if sample.Price < lo.Price {
			lo = sample
		}
		if sample.Price > hi.Price {
			hi = sample
		}
	}
	for _, extreme := range []model.Sample{lo, hi} {
		if !containsSample(out, extreme) {
			out = append(out, extreme)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func containsSample(s []model.Sample, target model.Sample) bool {
	for _, sample := range s {
		if sample == target {
			return true
		}
	}
	return false
}
