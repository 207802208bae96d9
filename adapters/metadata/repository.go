// Package metadata loads the upstream signal catalog and reconciles the
// coverage of signal pairs. The catalog is read once at startup and injected
// wherever it is needed; there is no package-level table.
package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"epilag/domain/signal"
	"epilag/internal/errors"
	"epilag/ports"
)

// Entry is one catalog row: a signal's coverage at one geography type.
type Entry struct {
	Source     string
	Signal     string
	GeoType    string
	Resolution signal.TimeResolution
	MinTime    time.Time
	MaxTime    time.Time
}

// Repository answers discovery questions against the loaded catalog.
type Repository struct {
	entries []Entry
}

// required metadata CSV columns, by header name
var requiredColumns = []string{"data_source", "signal", "geo_type", "time_type", "min_time", "max_time"}

// LoadFile reads the metadata CSV from disk.
func LoadFile(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open metadata file %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load parses metadata CSV rows from a reader.
func Load(r io.Reader) (*Repository, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read metadata header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("metadata is missing column %q", name))
		}
	}

	repo := &Repository{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read metadata line %d", line)
		}

		entry, err := parseEntry(record, cols)
		if err != nil {
			return nil, errors.Wrapf(err, "bad metadata line %d", line)
		}
		repo.entries = append(repo.entries, entry)
	}
	return repo, nil
}

func parseEntry(record []string, cols map[string]int) (Entry, error) {
	resolution, err := signal.ParseTimeResolution(record[cols["time_type"]])
	if err != nil {
		return Entry{}, err
	}
	minTime, err := parseCatalogDate(record[cols["min_time"]], resolution)
	if err != nil {
		return Entry{}, fmt.Errorf("bad min_time: %w", err)
	}
	maxTime, err := parseCatalogDate(record[cols["max_time"]], resolution)
	if err != nil {
		return Entry{}, fmt.Errorf("bad max_time: %w", err)
	}
	return Entry{
		Source:     record[cols["data_source"]],
		Signal:     record[cols["signal"]],
		GeoType:    record[cols["geo_type"]],
		Resolution: resolution,
		MinTime:    minTime,
		MaxTime:    maxTime,
	}, nil
}

// parseCatalogDate accepts either ISO dates or the integer wire encoding
// (YYYYMMDD / YYYYWW) that some catalog exports use.
func parseCatalogDate(s string, r signal.TimeResolution) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		if r == signal.ResolutionWeek {
			return signal.WeekStart(t), nil
		}
		return t, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	if r == signal.ResolutionWeek && n < 10000000 {
		return signal.FromEpiweekNumber(n)
	}
	return signal.FromDayNumber(n)
}

// Signals lists the distinct signals in the catalog, sorted for stable
// display.
func (r *Repository) Signals() []ports.SignalRef {
	seen := make(map[ports.SignalRef]bool)
	var out []ports.SignalRef
	for _, e := range r.entries {
		ref := ports.SignalRef{Source: e.Source, Signal: e.Signal}
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Signal < out[j].Signal
	})
	return out
}

// signalGeoTypes returns the geography types one signal is reported at.
func (r *Repository) signalGeoTypes(ref ports.SignalRef) []string {
	var out []string
	for _, e := range r.entries {
		if e.Source == ref.Source && e.Signal == ref.Signal {
			out = append(out, e.GeoType)
		}
	}
	return out
}

// SharedGeoTypes intersects the geography coverage of two signals.
func (r *Repository) SharedGeoTypes(a, b ports.SignalRef) []string {
	inA := make(map[string]bool)
	for _, g := range r.signalGeoTypes(a) {
		inA[g] = true
	}
	var out []string
	for _, g := range r.signalGeoTypes(b) {
		if inA[g] {
			out = append(out, g)
			inA[g] = false // dedupe
		}
	}
	sort.Strings(out)
	return out
}

// lookup finds a signal's catalog entry at one geography type.
func (r *Repository) lookup(ref ports.SignalRef, geoType string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Source == ref.Source && e.Signal == ref.Signal && e.GeoType == geoType {
			return e, true
		}
	}
	return Entry{}, false
}

// SharedDates reconciles two signals' coverage at a geography type: the
// window is the intersection of both ranges, and the two resolutions must
// agree. MaxLag is half the window span so a full sweep can never exhaust
// the overlap entirely.
func (r *Repository) SharedDates(a, b ports.SignalRef, geoType string) (*ports.SharedCoverage, error) {
	entryA, ok := r.lookup(a, geoType)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("signal %s:%s at geo type %s", a.Source, a.Signal, geoType))
	}
	entryB, ok := r.lookup(b, geoType)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("signal %s:%s at geo type %s", b.Source, b.Signal, geoType))
	}
	if entryA.Resolution != entryB.Resolution {
		return nil, errors.IncompatibleResolution(
			fmt.Sprintf("%s:%s", a.Source, a.Signal),
			fmt.Sprintf("%s:%s", b.Source, b.Signal))
	}

	init := entryA.MinTime
	if entryB.MinTime.After(init) {
		init = entryB.MinTime
	}
	final := entryA.MaxTime
	if entryB.MaxTime.Before(final) {
		final = entryB.MaxTime
	}
	if final.Before(init) {
		return nil, errors.InvalidInput(fmt.Sprintf(
			"signals have no overlapping coverage at geo type %s", geoType))
	}

	return &ports.SharedCoverage{
		InitDate:   init,
		FinalDate:  final,
		Resolution: entryA.Resolution,
		MaxLag:     MaxLag(init, final, entryA.Resolution),
	}, nil
}

// MaxLag derives the sweep bound from a coverage window: half the span in
// periods of the active resolution.
func MaxLag(init, final time.Time, r signal.TimeResolution) int {
	days := int(final.Sub(init).Hours() / 24)
	if r == signal.ResolutionWeek {
		return (days / 7) / 2
	}
	return days / 2
}
