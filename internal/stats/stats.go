// Package stats backs the correlation view: it extracts aligned numeric
// series of derived daily metrics and computes Pearson correlation and a
// linear fit between two of them. Absent values (unparseable fields,
// missing days) simply drop out of the pairwise computation.
package stats

import (
	"math"

	"github.com/aberthier/semainier/internal/journal"
)

// Metric names a derivable per-day numeric series.
type Metric string

const (
	MetricSleepHours  Metric = "sleep hours"
	MetricWorkHours   Metric = "work hours"
	MetricAvgEfficacy Metric = "avg efficacy"
	MetricDifficulty  Metric = "difficulty"
	MetricPatients    Metric = "patients"
)

// Metrics lists the selectable series in display order.
var Metrics = []Metric{
	MetricSleepHours, MetricWorkHours, MetricAvgEfficacy, MetricDifficulty, MetricPatients,
}

// Point is one day's value of a metric.
type Point struct {
	Date  string // journal.DateKey formatted
	Value float64
}

// Series extracts the metric's value for each record that has one,
// preserving the input order.
func Series(records []journal.Record, m Metric) []Point {
	var out []Point
	for _, r := range records {
		if v, ok := value(r, m); ok {
			out = append(out, Point{Date: r.Date.Format(journal.DateKey), Value: v})
		}
	}
	return out
}

func value(r journal.Record, m Metric) (float64, bool) {
	switch m {
	case MetricSleepHours:
		if v := journal.SleepHours(r); v != nil {
			return *v, true
		}
	case MetricWorkHours:
		if v := journal.WorkHours(r); v != nil {
			return *v, true
		}
	case MetricAvgEfficacy:
		if v := journal.AvgEfficacy(r); v != nil {
			return *v, true
		}
	case MetricDifficulty:
		return float64(r.Rating.Difficulty), true
	case MetricPatients:
		return float64(r.Work.PatientsTotal), true
	}
	return 0, false
}

// Paired returns the values of both metrics restricted to days where both
// are present.
func Paired(records []journal.Record, mx, my Metric) (xs, ys []float64) {
	for _, r := range records {
		x, okX := value(r, mx)
		y, okY := value(r, my)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// Pearson computes the correlation coefficient of two equal-length series.
// It reports ok=false with fewer than two pairs or when either series has
// zero variance.
func Pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0, false
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}

// LinearFit computes the least-squares line y = slope*x + intercept.
// It reports ok=false with fewer than two pairs or a degenerate x series.
func LinearFit(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0, 0, false
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var cov, varX float64
	for i := range xs {
		dx := xs[i] - meanX
		cov += dx * (ys[i] - meanY)
		varX += dx * dx
	}
	if varX == 0 {
		return 0, 0, false
	}
	slope = cov / varX
	return slope, meanY - slope*meanX, true
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
