// Package excel renders analysis results to .xlsx workbooks for analyst
// download.
package excel

import (
	"fmt"
	"io"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"epilag/domain/correlation"
	"epilag/domain/signal"
)

// SweepReport bundles everything one sweep export needs.
type SweepReport struct {
	Signal1 *signal.Series
	Signal2 *signal.Series
	Method  correlation.Method
	Profile *correlation.Profile
}

const (
	profileSheet = "Lag Profile"
	summarySheet = "Summary"
)

// WriteSweep writes a sweep report workbook: the full lag-correlation profile
// on one sheet and best-lag plus per-series summary statistics on another.
func WriteSweep(w io.Writer, report SweepReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeProfileSheet(f, report.Profile); err != nil {
		return err
	}
	if err := writeSummarySheet(f, report); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the profile.
	if idx, err := f.GetSheetIndex(profileSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeProfileSheet(f *excelize.File, profile *correlation.Profile) error {
	if _, err := f.NewSheet(profileSheet); err != nil {
		return fmt.Errorf("failed to create profile sheet: %w", err)
	}
	f.SetCellValue(profileSheet, "A1", "lag")
	f.SetCellValue(profileSheet, "B1", "correlation")

	row := 2
	for _, lag := range profile.Lags() {
		f.SetCellValue(profileSheet, fmt.Sprintf("A%d", row), lag)
		corr := profile.At(lag)
		if math.IsNaN(corr) {
			// Excel has no NaN; an undefined lag stays visibly blank.
			f.SetCellValue(profileSheet, fmt.Sprintf("B%d", row), "")
		} else {
			f.SetCellValue(profileSheet, fmt.Sprintf("B%d", row), corr)
		}
		row++
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report SweepReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	f.SetCellValue(summarySheet, "A1", "method")
	f.SetCellValue(summarySheet, "B1", string(report.Method))

	bestLag, bestCorr, err := report.Profile.Best()
	if err != nil {
		f.SetCellValue(summarySheet, "A2", "best lag")
		f.SetCellValue(summarySheet, "B2", "none (no defined correlation in range)")
	} else {
		f.SetCellValue(summarySheet, "A2", "best lag")
		f.SetCellValue(summarySheet, "B2", bestLag)
		f.SetCellValue(summarySheet, "A3", "best correlation")
		f.SetCellValue(summarySheet, "B3", bestCorr)
	}

	writeSeriesStats(f, 5, "signal 1", report.Signal1)
	writeSeriesStats(f, 11, "signal 2", report.Signal2)
	return nil
}

// writeSeriesStats writes a small descriptive block for one series starting
// at the given row.
func writeSeriesStats(f *excelize.File, row int, label string, s *signal.Series) {
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), label)
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%s:%s", s.Source, s.Signal))

	values := s.Values()
	set := func(offset int, name string, v float64, err error) {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row+offset), name)
		if err == nil {
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row+offset), v)
		}
	}
	mean, errMean := stats.Mean(values)
	set(1, "mean", mean, errMean)
	sd, errSd := stats.StandardDeviation(values)
	set(2, "std dev", sd, errSd)
	lo, errLo := stats.Min(values)
	set(3, "min", lo, errLo)
	hi, errHi := stats.Max(values)
	set(4, "max", hi, errHi)
}
