package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"epilag/domain/core"
	"epilag/domain/correlation"
	"epilag/domain/geo"
	"epilag/domain/signal"
	"epilag/internal"
	"epilag/internal/errors"
	"epilag/ports"
)

// AnalysisService orchestrates interactive lag-correlation analyses: it
// fetches signal pairs into sessions and runs the correlation core against
// session data. All per-analysis state lives in the session store; nothing
// is shared between concurrent analyses.
type AnalysisService struct {
	fetcher  ports.SignalFetcher
	metadata ports.MetadataSource
	sessions ports.SessionStore
	logger   *internal.Logger
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(fetcher ports.SignalFetcher, metadata ports.MetadataSource, sessions ports.SessionStore) *AnalysisService {
	return &AnalysisService{
		fetcher:  fetcher,
		metadata: metadata,
		sessions: sessions,
		logger:   internal.DefaultLogger,
	}
}

// FetchPairRequest identifies the two signals of a new analysis session.
// Date bounds are optional narrowing of the shared coverage window.
type FetchPairRequest struct {
	Signal1   ports.SignalRef
	Signal2   ports.SignalRef
	GeoType   geo.Type
	GeoValue  string
	StartDate time.Time
	EndDate   time.Time
}

// FetchPair reconciles the pair's coverage, fetches both series
// concurrently, and stores them in a fresh session. The returned session
// carries the maxLag the sweep may use.
func (s *AnalysisService) FetchPair(ctx context.Context, req FetchPairRequest) (*ports.AnalysisSession, error) {
	if req.Signal1 == req.Signal2 {
		return nil, errors.InvalidInput("cannot correlate a signal with itself")
	}
	if err := geo.ValidateRegion(req.GeoType, req.GeoValue); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	coverage, err := s.metadata.SharedDates(req.Signal1, req.Signal2, string(req.GeoType))
	if err != nil {
		return nil, err
	}

	start, end := coverage.InitDate, coverage.FinalDate
	if !req.StartDate.IsZero() && req.StartDate.After(start) {
		start = req.StartDate
	}
	if !req.EndDate.IsZero() && req.EndDate.Before(end) {
		end = req.EndDate
	}
	if end.Before(start) {
		return nil, errors.InvalidInput("requested date range does not overlap the signals' shared coverage")
	}
	maxLag := coverage.MaxLag
	if !req.StartDate.IsZero() || !req.EndDate.IsZero() {
		maxLag = maxLagFor(start, end, coverage.Resolution)
	}

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(ref ports.SignalRef) (*signal.Series, error) {
		return s.fetcher.FetchSeries(gctx, ports.FetchRequest{
			Source:     ref.Source,
			Signal:     ref.Signal,
			GeoType:    string(req.GeoType),
			GeoValue:   req.GeoValue,
			StartDate:  start,
			EndDate:    end,
			Resolution: coverage.Resolution,
		})
	}

	var series1, series2 *signal.Series
	g.Go(func() error {
		var err error
		series1, err = fetch(req.Signal1)
		return err
	})
	g.Go(func() error {
		var err error
		series2, err = fetch(req.Signal2)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to fetch signal pair")
	}

	session := &ports.AnalysisSession{
		ID:         core.SessionID(core.NewID()),
		Signal1:    req.Signal1,
		Signal2:    req.Signal2,
		GeoType:    string(req.GeoType),
		GeoValue:   req.GeoValue,
		Resolution: coverage.Resolution,
		MaxLag:     maxLag,
		Series1:    series1,
		Series2:    series2,
		CreatedAt:  time.Now(),
	}
	s.sessions.Put(session)

	s.logger.Info("session %s: fetched %s:%s vs %s:%s at %s=%s (%d/%d rows, maxLag=%d)",
		session.ID, req.Signal1.Source, req.Signal1.Signal,
		req.Signal2.Source, req.Signal2.Signal,
		req.GeoType, req.GeoValue, series1.Len(), series2.Len(), maxLag)
	return session, nil
}

// LagResult is one interactive single-lag evaluation: the coefficient plus
// the shifted copy of series1 for plotting against series2. Correlation is
// unrounded; display rounding belongs to the presentation layer.
type LagResult struct {
	Lag         int
	Method      correlation.Method
	Correlation float64
	Shifted1    *signal.Series
	SampleCount int
}

// CorrelationAtLag evaluates one candidate lag for a session.
func (s *AnalysisService) CorrelationAtLag(id core.SessionID, lag int, method correlation.Method) (*LagResult, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, errors.SessionNotFound(id.String())
	}
	if lag < -session.MaxLag || lag > session.MaxLag {
		return nil, errors.InvalidInput(fmt.Sprintf("lag %d outside [-%d, %d]", lag, session.MaxLag, session.MaxLag))
	}

	shifted, corr := correlation.AtLag(session.Series1, session.Series2, lag, method)
	samples := correlation.Join(shifted, session.Series2)
	return &LagResult{
		Lag:         lag,
		Method:      method,
		Correlation: corr,
		Shifted1:    shifted,
		SampleCount: len(samples),
	}, nil
}

// SweepResult is a full lag sweep: the profile plus its optimum.
type SweepResult struct {
	Method          correlation.Method
	Profile         *correlation.Profile
	BestLag         int
	BestCorrelation float64
	RuntimeMs       int64
}

// SweepLags runs the full lag sweep for a session, grouped by geography.
// When no lag in the range produces a defined correlation the error carries
// the NO_VALID_LAG code; "best lag is zero" is never conflated with "no
// signal found".
func (s *AnalysisService) SweepLags(id core.SessionID, method correlation.Method) (*SweepResult, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, errors.SessionNotFound(id.String())
	}

	start := time.Now()
	profile := correlation.SweepLags(session.Series1, session.Series2, session.MaxLag, method)
	bestLag, bestCorr, err := profile.Best()
	runtime := time.Since(start)

	if err != nil {
		s.logger.Warn("session %s: sweep over %d lags found no defined correlation", id, profile.Len())
		return nil, errors.NoValidLag()
	}

	s.logger.Info("session %s: swept %d lags in %v, best lag %d (%s=%.4f)",
		id, profile.Len(), runtime.Round(time.Millisecond), bestLag, method, bestCorr)
	return &SweepResult{
		Method:          method,
		Profile:         profile,
		BestLag:         bestLag,
		BestCorrelation: bestCorr,
		RuntimeMs:       runtime.Milliseconds(),
	}, nil
}

// DeleteSession discards a session and its fetched series.
func (s *AnalysisService) DeleteSession(id core.SessionID) {
	s.sessions.Delete(id)
}

// Session resolves a live session.
func (s *AnalysisService) Session(id core.SessionID) (*ports.AnalysisSession, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, errors.SessionNotFound(id.String())
	}
	return session, nil
}

func maxLagFor(init, final time.Time, r signal.TimeResolution) int {
	days := int(final.Sub(init).Hours() / 24)
	if r == signal.ResolutionWeek {
		return (days / 7) / 2
	}
	return days / 2
}
