package correlation

import (
	"errors"
	"fmt"
	"math"
)

// Method selects the correlation coefficient. Parsed once at the API/CLI
// boundary; core code switches on the typed constant only.
type Method string

const (
	MethodPearson  Method = "pearson"
	MethodKendall  Method = "kendall"
	MethodSpearman Method = "spearman"
)

// Methods lists the supported methods in display order.
func Methods() []Method {
	return []Method{MethodPearson, MethodKendall, MethodSpearman}
}

// ParseMethod resolves a user-supplied method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPearson, MethodKendall, MethodSpearman:
		return Method(s), nil
	}
	return "", fmt.Errorf("invalid correlation method %q (want pearson, kendall or spearman)", s)
}

// PairedSample is one (value1, value2) observation pair surviving the
// geo-time join for a given lag.
type PairedSample struct {
	GeoValue string
	Value1   float64
	Value2   float64
}

// ErrNoValidLag is returned by Profile.Best when every lag in the swept range
// produced an undefined correlation. Callers must distinguish this from a
// legitimate best lag of zero.
var ErrNoValidLag = errors.New("no lag in the swept range produced a defined correlation")

// Profile is the complete lag-correlation mapping for a sweep over
// [-MaxLag, +MaxLag]. Every lag has an entry; undefined correlations are NaN.
type Profile struct {
	MaxLag int
	values []float64
}

// NewProfile allocates a profile for maxLag, all entries NaN.
func NewProfile(maxLag int) *Profile {
	if maxLag < 0 {
		maxLag = 0
	}
	p := &Profile{MaxLag: maxLag, values: make([]float64, 2*maxLag+1)}
	for i := range p.values {
		p.values[i] = math.NaN()
	}
	return p
}

// Len returns the number of entries, always 2*MaxLag+1.
func (p *Profile) Len() int {
	return len(p.values)
}

// Set records the correlation for a lag.
func (p *Profile) Set(lag int, corr float64) {
	p.values[lag+p.MaxLag] = corr
}

// At returns the correlation at a lag (NaN when undefined).
func (p *Profile) At(lag int) float64 {
	return p.values[lag+p.MaxLag]
}

// Lags enumerates the swept lags in increasing order.
func (p *Profile) Lags() []int {
	out := make([]int, 0, p.Len())
	for lag := -p.MaxLag; lag <= p.MaxLag; lag++ {
		out = append(out, lag)
	}
	return out
}

// Best returns the lag with the maximal defined correlation. Ties go to the
// smallest lag; an all-NaN profile yields ErrNoValidLag.
func (p *Profile) Best() (lag int, corr float64, err error) {
	best := math.Inf(-1)
	bestLag := 0
	found := false
	for l := -p.MaxLag; l <= p.MaxLag; l++ {
		c := p.At(l)
		if math.IsNaN(c) {
			continue
		}
		if !found || c > best {
			best, bestLag, found = c, l, true
		}
	}
	if !found {
		return 0, math.NaN(), ErrNoValidLag
	}
	return bestLag, best, nil
}
