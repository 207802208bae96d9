package signal

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"sunday maps to itself", Date(2021, time.January, 3), Date(2021, time.January, 3)},
		{"wednesday maps back to sunday", Date(2021, time.January, 6), Date(2021, time.January, 3)},
		{"saturday maps back to sunday", Date(2021, time.January, 9), Date(2021, time.January, 3)},
		{"crosses a month boundary", Date(2021, time.February, 1), Date(2021, time.January, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEpiweek_YearBoundary(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		wantYear int
		wantWeek int
	}{
		// 2020 is a 53-week MMWR year; its last week swallows the first
		// days of January 2021.
		{"jan 1 2021 belongs to 2020w53", Date(2021, time.January, 1), 2020, 53},
		{"jan 2 2021 belongs to 2020w53", Date(2021, time.January, 2), 2020, 53},
		{"jan 3 2021 starts 2021w01", Date(2021, time.January, 3), 2021, 1},
		{"dec 29 2019 starts 2020w01", Date(2019, time.December, 29), 2020, 1},
		{"mid-year is uneventful", Date(2021, time.July, 4), 2021, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, week := Epiweek(tt.in)
			if year != tt.wantYear || week != tt.wantWeek {
				t.Errorf("Epiweek(%v) = %dw%02d, want %dw%02d",
					tt.in, year, week, tt.wantYear, tt.wantWeek)
			}
		})
	}
}

func TestEpiweekNumber_RoundTrip(t *testing.T) {
	for _, n := range []int{202001, 202053, 202101, 202152, 202327} {
		start, err := FromEpiweekNumber(n)
		if err != nil {
			t.Fatalf("FromEpiweekNumber(%d) failed: %v", n, err)
		}
		if got := EpiweekNumber(start); got != n {
			t.Errorf("EpiweekNumber(FromEpiweekNumber(%d)) = %d", n, got)
		}
	}
}

func TestFromEpiweekNumber_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   int
	}{
		{"week zero", 202100},
		{"week 54", 202154},
		{"week 53 of a 52-week year", 202153},
		{"ancient year", 100001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEpiweekNumber(tt.in); err == nil {
				t.Errorf("FromEpiweekNumber(%d) succeeded, want error", tt.in)
			}
		})
	}
}

func TestDayNumber_RoundTrip(t *testing.T) {
	d := Date(2021, time.March, 7)
	if got := DayNumber(d); got != 20210307 {
		t.Errorf("DayNumber = %d, want 20210307", got)
	}
	back, err := FromDayNumber(20210307)
	if err != nil {
		t.Fatalf("FromDayNumber failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestFromDayNumber_Invalid(t *testing.T) {
	for _, n := range []int{20210230, 20211301, 20210100} {
		if _, err := FromDayNumber(n); err == nil {
			t.Errorf("FromDayNumber(%d) succeeded, want error", n)
		}
	}
}

func TestAddPeriods(t *testing.T) {
	base := Date(2021, time.June, 1)

	if got := AddPeriods(base, 3, ResolutionDay); !got.Equal(Date(2021, time.June, 4)) {
		t.Errorf("3 days forward = %v", got)
	}
	if got := AddPeriods(base, -2, ResolutionDay); !got.Equal(Date(2021, time.May, 30)) {
		t.Errorf("2 days back = %v", got)
	}
	if got := AddPeriods(base, 2, ResolutionWeek); !got.Equal(Date(2021, time.June, 15)) {
		t.Errorf("2 weeks forward = %v", got)
	}
}

func TestEpidateRange(t *testing.T) {
	days := EpidateRange(Date(2021, time.January, 30), Date(2021, time.February, 2))
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	if !days[0].Equal(Date(2021, time.January, 30)) || !days[3].Equal(Date(2021, time.February, 2)) {
		t.Errorf("unexpected endpoints: %v .. %v", days[0], days[3])
	}
}

func TestEpiweekRange(t *testing.T) {
	// Jan 1 2021 (inside 2020w53) through Jan 20 2021 covers four weeks.
	weeks := EpiweekRange(Date(2021, time.January, 1), Date(2021, time.January, 20))
	if len(weeks) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(weeks))
	}
	if !weeks[0].Equal(Date(2020, time.December, 27)) {
		t.Errorf("first week starts %v, want 2020-12-27", weeks[0])
	}
	for _, w := range weeks {
		if w.Weekday() != time.Sunday {
			t.Errorf("week start %v is not a Sunday", w)
		}
	}
}
