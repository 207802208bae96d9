package ui

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"

	"epilag/adapters/excel"
	"epilag/app"
	"epilag/domain/core"
	"epilag/domain/correlation"
	"epilag/domain/geo"
	"epilag/domain/signal"
	"epilag/internal/errors"
	"epilag/ports"
)

const dateLayout = "2006-01-02"

func (s *Server) handleListSignals(c *gin.Context) {
	refs := s.catalog.Signals()
	out := make([]gin.H, 0, len(refs))
	for _, ref := range refs {
		out = append(out, gin.H{"source": ref.Source, "signal": ref.Signal})
	}
	c.JSON(http.StatusOK, gin.H{"signals": out})
}

// signalPair pulls the two signal refs every discovery endpoint takes.
func signalPair(c *gin.Context) (ports.SignalRef, ports.SignalRef, error) {
	a := ports.SignalRef{Source: c.Query("source1"), Signal: c.Query("signal1")}
	b := ports.SignalRef{Source: c.Query("source2"), Signal: c.Query("signal2")}
	if a.Source == "" || a.Signal == "" || b.Source == "" || b.Signal == "" {
		return a, b, errors.InvalidInput("source1, signal1, source2 and signal2 are required")
	}
	return a, b, nil
}

func (s *Server) handleSharedGeoTypes(c *gin.Context) {
	a, b, err := signalPair(c)
	if err != nil {
		respondError(c, err)
		return
	}
	shared, err := s.catalog.SharedGeoTypes(a, b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"geo_types": shared})
}

func (s *Server) handleSharedDates(c *gin.Context) {
	a, b, err := signalPair(c)
	if err != nil {
		respondError(c, err)
		return
	}
	geoType := c.Query("geo_type")
	if geoType == "" {
		respondError(c, errors.InvalidInput("geo_type is required"))
		return
	}
	coverage, err := s.catalog.SharedDates(a, b, geoType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"init_date":  coverage.InitDate.Format(dateLayout),
		"final_date": coverage.FinalDate.Format(dateLayout),
		"resolution": coverage.Resolution,
		"max_lag":    coverage.MaxLag,
	})
}

// fetchPairRequest is the JSON body for session creation.
type fetchPairRequest struct {
	Source1   string `json:"source1" binding:"required"`
	Signal1   string `json:"signal1" binding:"required"`
	Source2   string `json:"source2" binding:"required"`
	Signal2   string `json:"signal2" binding:"required"`
	GeoType   string `json:"geo_type" binding:"required"`
	GeoValue  string `json:"geo_value" binding:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handleFetchPair(c *gin.Context) {
	var body fetchPairRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	geoType, err := geo.ParseType(body.GeoType)
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	req := app.FetchPairRequest{
		Signal1:  ports.SignalRef{Source: body.Source1, Signal: body.Signal1},
		Signal2:  ports.SignalRef{Source: body.Source2, Signal: body.Signal2},
		GeoType:  geoType,
		GeoValue: body.GeoValue,
	}
	if body.StartDate != "" {
		t, err := time.ParseInLocation(dateLayout, body.StartDate, time.UTC)
		if err != nil {
			respondError(c, errors.InvalidInput(fmt.Sprintf("bad start_date: %v", err)))
			return
		}
		req.StartDate = t
	}
	if body.EndDate != "" {
		t, err := time.ParseInLocation(dateLayout, body.EndDate, time.UTC)
		if err != nil {
			respondError(c, errors.InvalidInput(fmt.Sprintf("bad end_date: %v", err)))
			return
		}
		req.EndDate = t
	}

	session, err := s.analysis.FetchPair(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionSummary(session))
}

func (s *Server) handleGetSession(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	session, err := s.analysis.Session(id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := sessionSummary(session)
	out["series1"] = seriesJSON(session.Series1)
	out["series2"] = seriesJSON(session.Series2)
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	s.analysis.DeleteSession(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCorrelationAtLag(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	lag, err := strconv.Atoi(c.DefaultQuery("lag", "0"))
	if err != nil {
		respondError(c, errors.InvalidInput("lag must be an integer"))
		return
	}
	method, err := methodParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.analysis.CorrelationAtLag(id, lag, method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lag":          result.Lag,
		"method":       result.Method,
		"correlation":  round3(result.Correlation),
		"sample_count": result.SampleCount,
		"shifted1":     seriesJSON(result.Shifted1),
	})
}

func (s *Server) handleSweep(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	method, err := methodParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.analysis.SweepLags(id, method)
	if err != nil {
		respondError(c, err)
		return
	}

	profile := make([]gin.H, 0, result.Profile.Len())
	for _, lag := range result.Profile.Lags() {
		profile = append(profile, gin.H{"lag": lag, "correlation": round3(result.Profile.At(lag))})
	}
	c.JSON(http.StatusOK, gin.H{
		"method":           result.Method,
		"best_lag":         result.BestLag,
		"best_correlation": round3(result.BestCorrelation),
		"profile":          profile,
		"runtime_ms":       result.RuntimeMs,
	})
}

func (s *Server) handleSweepExport(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	method, err := methodParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	session, err := s.analysis.Session(id)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := s.analysis.SweepLags(id, method)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("lag-sweep-%s.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	err = excel.WriteSweep(c.Writer, excel.SweepReport{
		Signal1: session.Series1,
		Signal2: session.Series2,
		Method:  method,
		Profile: result.Profile,
	})
	if err != nil {
		s.logger.Error("sweep export for session %s failed: %v", id, err)
	}
}

func sessionID(c *gin.Context) (core.SessionID, error) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		return "", errors.InvalidInput(err.Error())
	}
	return id, nil
}

func methodParam(c *gin.Context) (correlation.Method, error) {
	raw := c.DefaultQuery("method", string(correlation.MethodPearson))
	method, err := correlation.ParseMethod(raw)
	if err != nil {
		return "", errors.InvalidInput(err.Error())
	}
	return method, nil
}

func sessionSummary(session *ports.AnalysisSession) gin.H {
	return gin.H{
		"id":         session.ID,
		"signal1":    gin.H{"source": session.Signal1.Source, "signal": session.Signal1.Signal},
		"signal2":    gin.H{"source": session.Signal2.Source, "signal": session.Signal2.Signal},
		"geo_type":   session.GeoType,
		"geo_value":  session.GeoValue,
		"resolution": session.Resolution,
		"max_lag":    session.MaxLag,
		"rows1":      session.Series1.Len(),
		"rows2":      session.Series2.Len(),
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func seriesJSON(s *signal.Series) []gin.H {
	out := make([]gin.H, 0, s.Len())
	for _, obs := range s.Observations {
		row := gin.H{
			"geo_value": obs.GeoValue,
			"date":      obs.TimeValue.Format(dateLayout),
		}
		if obs.Value != nil {
			row["value"] = *obs.Value
		} else {
			row["value"] = nil
		}
		out = append(out, row)
	}
	return out
}

// round3 rounds for display only. Undefined correlations serialize as null.
func round3(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	rounded, err := stats.Round(v, 3)
	if err != nil {
		return nil
	}
	return &rounded
}
