package signal

import (
	"fmt"
	"time"
)

// MMWR (epidemiological) week arithmetic. An MMWR week runs Sunday through
// Saturday; week 1 of a year is the first week with at least four days in
// January, so its Sunday falls between Dec 29 and Jan 4.

// Date builds a UTC midnight time key.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Sunday on or before d, the canonical time key for
// week-resolution observations.
func WeekStart(d time.Time) time.Time {
	d = Date(d.Year(), d.Month(), d.Day())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// firstWeekStart returns the Sunday beginning MMWR week 1 of the given year.
func firstWeekStart(year int) time.Time {
	return WeekStart(Date(year, time.January, 4))
}

// Epiweek returns the MMWR year and week number containing d. The week
// belongs to the year holding the majority of its days, i.e. the year of its
// Wednesday.
func Epiweek(d time.Time) (year, week int) {
	ws := WeekStart(d)
	year = ws.AddDate(0, 0, 3).Year()
	week = int(ws.Sub(firstWeekStart(year)).Hours()/(24*7)) + 1
	return year, week
}

// EpiweekNumber encodes the MMWR week of d as YYYYWW, the covidcast wire
// format for week time values.
func EpiweekNumber(d time.Time) int {
	y, w := Epiweek(d)
	return y*100 + w
}

// FromEpiweekNumber decodes a YYYYWW week identifier to the week's start day.
func FromEpiweekNumber(n int) (time.Time, error) {
	year, week := n/100, n%100
	if year < 1900 || week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("invalid epiweek %d", n)
	}
	start := firstWeekStart(year).AddDate(0, 0, 7*(week-1))
	if y, w := Epiweek(start); y != year || w != week {
		return time.Time{}, fmt.Errorf("epiweek %d does not exist", n)
	}
	return start, nil
}

// DayNumber encodes d as YYYYMMDD, the covidcast wire format for day time
// values.
func DayNumber(d time.Time) int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}

// FromDayNumber decodes a YYYYMMDD day identifier.
func FromDayNumber(n int) (time.Time, error) {
	year, month, day := n/10000, (n/100)%100, n%100
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day %d", n)
	}
	d := Date(year, time.Month(month), day)
	if DayNumber(d) != n {
		return time.Time{}, fmt.Errorf("day %d does not exist", n)
	}
	return d, nil
}

// AddPeriods advances a time key by n periods of the given resolution.
// Negative n moves backward.
func AddPeriods(d time.Time, n int, r TimeResolution) time.Time {
	return d.AddDate(0, 0, n*r.PeriodDays())
}

// EpidateRange enumerates every day from init through final inclusive.
func EpidateRange(init, final time.Time) []time.Time {
	var out []time.Time
	for d := Date(init.Year(), init.Month(), init.Day()); !d.After(final); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// EpiweekRange enumerates the start day of every MMWR week overlapping
// [init, final].
func EpiweekRange(init, final time.Time) []time.Time {
	var out []time.Time
	for d := WeekStart(init); !d.After(final); d = d.AddDate(0, 0, 7) {
		out = append(out, d)
	}
	return out
}
