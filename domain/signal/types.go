package signal

import (
	"fmt"
	"sort"
	"time"
)

// TimeResolution is the reporting frequency of a signal. Both series of an
// analysis must share one resolution; the reconciliation layer enforces this
// before any core computation runs.
type TimeResolution string

const (
	ResolutionDay  TimeResolution = "day"
	ResolutionWeek TimeResolution = "week"
)

// ParseTimeResolution resolves the wire/CSV spelling of a time_type once at
// the boundary. Core code only ever sees the typed constant.
func ParseTimeResolution(s string) (TimeResolution, error) {
	switch TimeResolution(s) {
	case ResolutionDay:
		return ResolutionDay, nil
	case ResolutionWeek:
		return ResolutionWeek, nil
	}
	return "", fmt.Errorf("invalid time resolution %q (want %q or %q)", s, ResolutionDay, ResolutionWeek)
}

// PeriodDays returns the calendar length of one period.
func (r TimeResolution) PeriodDays() int {
	if r == ResolutionWeek {
		return 7
	}
	return 1
}

// Observation is a single reported value: one geography, one time key.
// Value is nil when the upstream source reported the row without a value.
type Observation struct {
	GeoValue  string    `json:"geo_value"`
	TimeValue time.Time `json:"time_value"`
	Value     *float64  `json:"value"`
}

// Series is one signal's observations for a single geography type and time
// resolution, ordered by time. Day-resolution time keys are UTC midnights;
// week-resolution time keys are the first day of the MMWR week.
type Series struct {
	Source       string         `json:"source"`
	Signal       string         `json:"signal"`
	GeoType      string         `json:"geo_type"`
	Resolution   TimeResolution `json:"resolution"`
	Observations []Observation  `json:"observations"`
}

// Len returns the observation count.
func (s *Series) Len() int {
	return len(s.Observations)
}

// Clone deep-copies the series, including the nullable values, so shifted
// copies can never alias caller-owned data.
func (s *Series) Clone() *Series {
	out := &Series{
		Source:       s.Source,
		Signal:       s.Signal,
		GeoType:      s.GeoType,
		Resolution:   s.Resolution,
		Observations: make([]Observation, len(s.Observations)),
	}
	copy(out.Observations, s.Observations)
	for i := range out.Observations {
		if v := out.Observations[i].Value; v != nil {
			cp := *v
			out.Observations[i].Value = &cp
		}
	}
	return out
}

// SortByTime orders observations by (time, geography) for deterministic
// iteration.
func (s *Series) SortByTime() {
	sort.SliceStable(s.Observations, func(i, j int) bool {
		a, b := s.Observations[i], s.Observations[j]
		if !a.TimeValue.Equal(b.TimeValue) {
			return a.TimeValue.Before(b.TimeValue)
		}
		return a.GeoValue < b.GeoValue
	})
}

// Values returns the non-missing values in observation order.
func (s *Series) Values() []float64 {
	out := make([]float64, 0, len(s.Observations))
	for _, obs := range s.Observations {
		if obs.Value != nil {
			out = append(out, *obs.Value)
		}
	}
	return out
}

// Float is a convenience for building observations with present values.
func Float(v float64) *float64 {
	return &v
}
