package ports

import (
	"time"

	"epilag/domain/core"
	"epilag/domain/signal"
)

// AnalysisSession is the caller-held state for one fetched signal pair. The
// correlation core never sees sessions; services resolve a session to its two
// series and pass those in as plain parameters.
type AnalysisSession struct {
	ID         core.SessionID
	Signal1    SignalRef
	Signal2    SignalRef
	GeoType    string
	GeoValue   string
	Resolution signal.TimeResolution
	MaxLag     int
	Series1    *signal.Series
	Series2    *signal.Series
	CreatedAt  time.Time
}

// SessionStore keeps fetched series between interactive requests within a
// session's lifetime. No implementation persists across process restarts.
type SessionStore interface {
	Put(session *AnalysisSession)
	Get(id core.SessionID) (*AnalysisSession, bool)
	Delete(id core.SessionID)
}
