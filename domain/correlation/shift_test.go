package correlation

import (
	"testing"
	"time"

	"epilag/domain/signal"
)

func daySeries(values ...float64) *signal.Series {
	s := &signal.Series{Source: "src", Signal: "sig", Resolution: signal.ResolutionDay}
	for i, v := range values {
		s.Observations = append(s.Observations, signal.Observation{
			GeoValue:  "ca",
			TimeValue: signal.Date(2021, time.March, 1+i),
			Value:     signal.Float(v),
		})
	}
	return s
}

func TestShift_MovesTimeKeysOnly(t *testing.T) {
	s := daySeries(1, 2, 3)
	shifted := Shift(s, 2)

	if shifted.Len() != s.Len() {
		t.Fatalf("shift changed row count: %d -> %d", s.Len(), shifted.Len())
	}
	for i, obs := range shifted.Observations {
		want := signal.Date(2021, time.March, 3+i)
		if !obs.TimeValue.Equal(want) {
			t.Errorf("row %d time = %v, want %v", i, obs.TimeValue, want)
		}
		if *obs.Value != *s.Observations[i].Value {
			t.Errorf("row %d value changed: %v", i, *obs.Value)
		}
	}
}

func TestShift_DoesNotMutateInput(t *testing.T) {
	s := daySeries(1, 2, 3)
	Shift(s, 5)

	if !s.Observations[0].TimeValue.Equal(signal.Date(2021, time.March, 1)) {
		t.Error("input series was mutated by shift")
	}
}

func TestShift_Reversible(t *testing.T) {
	s := daySeries(1, 2, 3)
	back := Shift(Shift(s, 7), -7)

	for i := range s.Observations {
		if !back.Observations[i].TimeValue.Equal(s.Observations[i].TimeValue) {
			t.Errorf("row %d did not return to %v", i, s.Observations[i].TimeValue)
		}
	}
}

func TestShift_WeekResolution(t *testing.T) {
	s := &signal.Series{
		Resolution: signal.ResolutionWeek,
		Observations: []signal.Observation{
			{GeoValue: "ca", TimeValue: signal.Date(2021, time.January, 3), Value: signal.Float(1)},
		},
	}
	shifted := Shift(s, -2)
	want := signal.Date(2020, time.December, 20)
	if got := shifted.Observations[0].TimeValue; !got.Equal(want) {
		t.Errorf("week shift -2 = %v, want %v", got, want)
	}
}

func TestShift_ZeroIsIdentity(t *testing.T) {
	s := daySeries(1, 2)
	shifted := Shift(s, 0)
	for i := range s.Observations {
		if !shifted.Observations[i].TimeValue.Equal(s.Observations[i].TimeValue) {
			t.Errorf("zero shift moved row %d", i)
		}
	}
}
