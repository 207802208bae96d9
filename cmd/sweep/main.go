// Command sweep runs a lag-correlation sweep over two local CSV series.
// Each input file carries geo_value,date,value rows; dates are ISO
// (YYYY-MM-DD). Useful for offline analysis of exported or synthetic data
// without a running API server.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"epilag/adapters/excel"
	"epilag/adapters/metadata"
	"epilag/domain/correlation"
	"epilag/domain/signal"
)

func main() {
	file1 := flag.String("signal1", "", "CSV file with the first signal (geo_value,date,value)")
	file2 := flag.String("signal2", "", "CSV file with the second signal (geo_value,date,value)")
	resolution := flag.String("resolution", "day", "time resolution: day or week")
	method := flag.String("method", "pearson", "correlation method: pearson, kendall or spearman")
	maxLag := flag.Int("max-lag", 0, "sweep bound in periods (0 = half the shared span)")
	out := flag.String("out", "", "optional .xlsx report path")
	flag.Parse()

	if *file1 == "" || *file2 == "" {
		flag.Usage()
		os.Exit(2)
	}

	res, err := signal.ParseTimeResolution(*resolution)
	if err != nil {
		log.Fatalf("bad -resolution: %v", err)
	}
	m, err := correlation.ParseMethod(*method)
	if err != nil {
		log.Fatalf("bad -method: %v", err)
	}

	series1, err := loadSeries(*file1, res)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *file1, err)
	}
	series2, err := loadSeries(*file2, res)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *file2, err)
	}

	bound := *maxLag
	if bound <= 0 {
		init, final, err := sharedSpan(series1, series2)
		if err != nil {
			log.Fatalf("%v", err)
		}
		bound = metadata.MaxLag(init, final, res)
	}

	profile := correlation.SweepLags(series1, series2, bound, m)

	fmt.Printf("lag\tcorrelation\n")
	for _, lag := range profile.Lags() {
		corr := profile.At(lag)
		if math.IsNaN(corr) {
			fmt.Printf("%d\t-\n", lag)
		} else {
			fmt.Printf("%d\t%.3f\n", lag, corr)
		}
	}

	bestLag, bestCorr, err := profile.Best()
	if err != nil {
		log.Fatalf("sweep over [%d, %d] produced no defined correlation", -bound, bound)
	}
	fmt.Printf("\nbest lag: %d (%s=%.3f)\n", bestLag, m, bestCorr)

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create %s: %v", *out, err)
		}
		defer f.Close()
		report := excel.SweepReport{Signal1: series1, Signal2: series2, Method: m, Profile: profile}
		if err := excel.WriteSweep(f, report); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		fmt.Printf("wrote %s\n", *out)
	}
}

// loadSeries reads a geo_value,date,value CSV. An empty value field is kept
// as a missing observation.
func loadSeries(path string, res signal.TimeResolution) (*signal.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	series := &signal.Series{Resolution: res}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 columns, got %d", line, len(record))
		}
		if line == 1 && record[0] == "geo_value" {
			continue // header
		}

		t, err := time.ParseInLocation("2006-01-02", record[1], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad date %q", line, record[1])
		}
		if res == signal.ResolutionWeek {
			t = signal.WeekStart(t)
		}

		var value *float64
		if record[2] != "" {
			v, err := strconv.ParseFloat(record[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q", line, record[2])
			}
			value = &v
		}
		series.Observations = append(series.Observations, signal.Observation{
			GeoValue:  record[0],
			TimeValue: t,
			Value:     value,
		})
	}
	series.SortByTime()
	return series, nil
}

// sharedSpan finds the overlap of the two series' date ranges.
func sharedSpan(a, b *signal.Series) (time.Time, time.Time, error) {
	if a.Len() == 0 || b.Len() == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("both inputs need at least one observation")
	}
	init := a.Observations[0].TimeValue
	if t := b.Observations[0].TimeValue; t.After(init) {
		init = t
	}
	final := a.Observations[a.Len()-1].TimeValue
	if t := b.Observations[b.Len()-1].TimeValue; t.Before(final) {
		final = t
	}
	if final.Before(init) {
		return time.Time{}, time.Time{}, fmt.Errorf("inputs have no overlapping dates")
	}
	return init, final, nil
}
