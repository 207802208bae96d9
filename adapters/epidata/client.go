// Package epidata fetches signal series from a COVIDcast-compatible Epidata
// API. It is the only component that talks to the network; everything
// downstream works on materialized series.
package epidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"epilag/domain/signal"
	"epilag/internal"
	"epilag/internal/errors"
	"epilag/ports"
)

// Client queries the covidcast endpoint of an Epidata server.
type Client struct {
	hc      *http.Client
	baseURL string
	logger  *internal.Logger
}

// NewClient creates an Epidata client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  internal.DefaultLogger,
	}
}

// covidcastResponse is the upstream envelope. Result 1 means success; -2
// means no rows matched, which is a legitimate empty series.
type covidcastResponse struct {
	Result  int    `json:"result"`
	Message string `json:"message"`
	Epidata []struct {
		GeoValue  string   `json:"geo_value"`
		TimeValue int      `json:"time_value"`
		Value     *float64 `json:"value"`
	} `json:"epidata"`
}

// FetchSeries retrieves one signal's observations over the request window.
func (c *Client) FetchSeries(ctx context.Context, req ports.FetchRequest) (*signal.Series, error) {
	endpoint := fmt.Sprintf("%s/covidcast/", c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build covidcast request")
	}
	httpReq.URL.RawQuery = c.query(req).Encode()

	start := time.Now()
	res, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, errors.ExternalServiceError("epidata", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.ExternalServiceError("epidata", fmt.Errorf("unexpected status %s", res.Status))
	}

	var payload covidcastResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, errors.ExternalServiceError("epidata", err)
	}
	if payload.Result != 1 && payload.Result != -2 {
		return nil, errors.ExternalServiceError("epidata",
			fmt.Errorf("result %d: %s", payload.Result, payload.Message))
	}

	series := &signal.Series{
		Source:     req.Source,
		Signal:     req.Signal,
		GeoType:    req.GeoType,
		Resolution: req.Resolution,
	}
	for _, row := range payload.Epidata {
		t, err := decodeTimeValue(row.TimeValue, req.Resolution)
		if err != nil {
			return nil, errors.Wrapf(err, "bad time_value in %s:%s response", req.Source, req.Signal)
		}
		series.Observations = append(series.Observations, signal.Observation{
			GeoValue:  row.GeoValue,
			TimeValue: t,
			Value:     row.Value,
		})
	}
	series.SortByTime()

	c.logger.Info("fetched %s:%s %s=%s (%d rows in %v)",
		req.Source, req.Signal, req.GeoType, req.GeoValue, series.Len(), time.Since(start).Round(time.Millisecond))
	return series, nil
}

// query builds the covidcast parameter set. Time values use the wire
// encoding of the active resolution: YYYYMMDD for days, YYYYWW for epiweeks.
func (c *Client) query(req ports.FetchRequest) url.Values {
	q := url.Values{}
	q.Set("data_source", req.Source)
	q.Set("signal", req.Signal)
	q.Set("geo_type", req.GeoType)
	q.Set("geo_value", req.GeoValue)
	q.Set("time_type", string(req.Resolution))
	if req.Resolution == signal.ResolutionWeek {
		q.Set("time_values", fmt.Sprintf("%d-%d",
			signal.EpiweekNumber(req.StartDate), signal.EpiweekNumber(req.EndDate)))
	} else {
		q.Set("time_values", fmt.Sprintf("%d-%d",
			signal.DayNumber(req.StartDate), signal.DayNumber(req.EndDate)))
	}
	return q
}

func decodeTimeValue(n int, r signal.TimeResolution) (t time.Time, err error) {
	if r == signal.ResolutionWeek {
		return signal.FromEpiweekNumber(n)
	}
	return signal.FromDayNumber(n)
}
