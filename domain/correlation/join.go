package correlation

import (
	"epilag/domain/signal"
)

type joinKey struct {
	geo  string
	unix int64
}

// Join inner-joins two series on the composite (geo_value, time_value) key,
// producing one paired sample per key present in both inputs. Rows found in
// only one series are dropped silently: incomplete date coverage is routine,
// not an error. Rows with a missing value on either side are excluded before
// pairing. Zero matches yield an empty slice.
//
// Output order follows the left series, so repeated joins over the same
// inputs are deterministic.
func Join(a, b *signal.Series) []PairedSample {
	right := make(map[joinKey]float64, len(b.Observations))
	for _, obs := range b.Observations {
		if obs.Value == nil {
			continue
		}
		right[joinKey{obs.GeoValue, obs.TimeValue.Unix()}] = *obs.Value
	}

	samples := make([]PairedSample, 0, min(len(a.Observations), len(right)))
	for _, obs := range a.Observations {
		if obs.Value == nil {
			continue
		}
		v2, ok := right[joinKey{obs.GeoValue, obs.TimeValue.Unix()}]
		if !ok {
			continue
		}
		samples = append(samples, PairedSample{
			GeoValue: obs.GeoValue,
			Value1:   *obs.Value,
			Value2:   v2,
		})
	}
	return samples
}
