package ports

import (
	"context"
	"time"

	"epilag/domain/signal"
)

// FetchRequest identifies one signal's series over a shared coverage window.
// The date range and resolution arrive pre-reconciled from the metadata
// layer.
type FetchRequest struct {
	Source     string
	Signal     string
	GeoType    string
	GeoValue   string
	StartDate  time.Time
	EndDate    time.Time
	Resolution signal.TimeResolution
}

// SignalFetcher retrieves an already-published signal series from the
// upstream source. Implementations own all transport concerns; the analysis
// layer only ever sees materialized series.
type SignalFetcher interface {
	FetchSeries(ctx context.Context, req FetchRequest) (*signal.Series, error)
}
