package correlation

import (
	"epilag/domain/signal"
)

// Shift returns a new series with every observation's time key advanced by
// lag periods of the series resolution (negative lag moves backward). The
// input series is never mutated and the row count is preserved, so shifting
// is safe to repeat once per candidate lag during a sweep.
func Shift(s *signal.Series, lag int) *signal.Series {
	out := s.Clone()
	if lag == 0 {
		return out
	}
	for i := range out.Observations {
		out.Observations[i].TimeValue = signal.AddPeriods(out.Observations[i].TimeValue, lag, out.Resolution)
	}
	return out
}
