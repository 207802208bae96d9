package correlation

import (
	"testing"
	"time"

	"epilag/domain/signal"
)

func obs(geo string, day int, v *float64) signal.Observation {
	return signal.Observation{
		GeoValue:  geo,
		TimeValue: signal.Date(2021, time.March, day),
		Value:     v,
	}
}

func TestJoin_InnerOnGeoAndTime(t *testing.T) {
	a := &signal.Series{Resolution: signal.ResolutionDay, Observations: []signal.Observation{
		obs("ca", 1, signal.Float(1)),
		obs("ca", 2, signal.Float(2)),
		obs("ny", 1, signal.Float(3)),
	}}
	b := &signal.Series{Resolution: signal.ResolutionDay, Observations: []signal.Observation{
		obs("ca", 1, signal.Float(10)),
		obs("ca", 3, signal.Float(20)), // day only in b
		obs("tx", 1, signal.Float(30)), // geo only in b
	}}

	samples := Join(a, b)
	if len(samples) != 1 {
		t.Fatalf("expected 1 paired sample, got %d", len(samples))
	}
	got := samples[0]
	if got.GeoValue != "ca" || got.Value1 != 1 || got.Value2 != 10 {
		t.Errorf("unexpected sample %+v", got)
	}
}

func TestJoin_SameTimeDifferentGeoDoesNotPair(t *testing.T) {
	a := &signal.Series{Observations: []signal.Observation{obs("ca", 1, signal.Float(1))}}
	b := &signal.Series{Observations: []signal.Observation{obs("ny", 1, signal.Float(2))}}

	if samples := Join(a, b); len(samples) != 0 {
		t.Errorf("expected no samples across geographies, got %d", len(samples))
	}
}

func TestJoin_MissingValuesExcluded(t *testing.T) {
	a := &signal.Series{Observations: []signal.Observation{
		obs("ca", 1, nil),
		obs("ca", 2, signal.Float(2)),
	}}
	b := &signal.Series{Observations: []signal.Observation{
		obs("ca", 1, signal.Float(10)),
		obs("ca", 2, nil),
	}}

	if samples := Join(a, b); len(samples) != 0 {
		t.Errorf("expected missing values to block pairing, got %d samples", len(samples))
	}
}

func TestJoin_EmptyInputs(t *testing.T) {
	empty := &signal.Series{}
	full := &signal.Series{Observations: []signal.Observation{obs("ca", 1, signal.Float(1))}}

	if samples := Join(empty, full); len(samples) != 0 {
		t.Errorf("join with empty left returned %d samples", len(samples))
	}
	if samples := Join(full, empty); len(samples) != 0 {
		t.Errorf("join with empty right returned %d samples", len(samples))
	}
}

func TestJoin_OrderFollowsLeftSeries(t *testing.T) {
	a := &signal.Series{Observations: []signal.Observation{
		obs("ny", 2, signal.Float(1)),
		obs("ca", 1, signal.Float(2)),
	}}
	b := &signal.Series{Observations: []signal.Observation{
		obs("ca", 1, signal.Float(10)),
		obs("ny", 2, signal.Float(20)),
	}}

	samples := Join(a, b)
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].GeoValue != "ny" || samples[1].GeoValue != "ca" {
		t.Errorf("output order %s, %s does not follow left series",
			samples[0].GeoValue, samples[1].GeoValue)
	}
}
