package correlation

import (
	"epilag/domain/signal"
)

// AtLag shifts series1 by lag (series2 stays fixed, keeping the "lag of
// series1 relative to series2" direction consistent), joins the two on
// (geo, time), and evaluates the selected method grouped by geography.
// The shifted copy of series1 is returned alongside the coefficient so the
// presentation layer can plot it against series2; the coefficient is
// unrounded.
func AtLag(series1, series2 *signal.Series, lag int, method Method) (*signal.Series, float64) {
	shifted := Shift(series1, lag)
	corr := Evaluate(Join(shifted, series2), method, GroupByGeo)
	return shifted, corr
}

// SweepLags evaluates every integer lag in [-maxLag, +maxLag] inclusive and
// returns the full profile. Lags whose join is empty or whose correlation is
// undefined carry NaN; the profile always has 2*maxLag+1 entries. This is the
// expensive path: one join and one grouped evaluation per lag, all in-memory.
func SweepLags(series1, series2 *signal.Series, maxLag int, method Method) *Profile {
	profile := NewProfile(maxLag)
	for lag := -maxLag; lag <= maxLag; lag++ {
		_, corr := AtLag(series1, series2, lag, method)
		profile.Set(lag, corr)
	}
	return profile
}
