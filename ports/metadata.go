package ports

import (
	"time"

	"epilag/domain/signal"
)

// SignalRef names one upstream signal.
type SignalRef struct {
	Source string `json:"source"`
	Signal string `json:"signal"`
}

// SharedCoverage is the reconciled comparison window for a signal pair at one
// geography type: the overlap of both coverage ranges, their common
// resolution, and the maximum lag a sweep may use without exhausting the
// overlap.
type SharedCoverage struct {
	InitDate   time.Time             `json:"init_date"`
	FinalDate  time.Time             `json:"final_date"`
	Resolution signal.TimeResolution `json:"resolution"`
	MaxLag     int                   `json:"max_lag"`
}

// MetadataSource answers discovery questions about the upstream signal
// catalog. The metadata table is injected at construction; nothing reads
// ambient global state.
type MetadataSource interface {
	// Signals lists every known signal.
	Signals() []SignalRef

	// SharedGeoTypes returns the geography types at which both signals are
	// reported.
	SharedGeoTypes(a, b SignalRef) []string

	// SharedDates reconciles the two signals' coverage at a geography type.
	// It fails with an incompatible-resolution error when the signals report
	// at different frequencies.
	SharedDates(a, b SignalRef, geoType string) (*SharedCoverage, error)
}
