package weather

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes an analysis window. Fields are nil when they cannot be
// computed, e.g. a correlation with fewer than two paired values.
type Summary struct {
	Days           int      `json:"days"`
	MeanDepDelay   *float64 `json:"meanDepDelay"`
	MeanArrDelay   *float64 `json:"meanArrDelay"`
	MeanMetric     *float64 `json:"meanMetric"`
	DepCorrelation *float64 `json:"depCorrelation"`
	ArrCorrelation *float64 `json:"arrCorrelation"`
}

// Summarize computes delay means over all records and the metric mean and
// delay/metric Pearson correlations over records where the metric is present.
func Summarize(records []JoinedRecord, m Metric) Summary {
	s := Summary{Days: len(records)}
	if len(records) == 0 {
		return s
	}

	dep := make([]float64, 0, len(records))
	arr := make([]float64, 0, len(records))
	for _, r := range records {
		dep = append(dep, r.AvgDepDelay)
		arr = append(arr, r.AvgArrDelay)
	}
	s.MeanDepDelay = finite(stat.Mean(dep, nil))
	s.MeanArrDelay = finite(stat.Mean(arr, nil))

	var pairedDep, pairedArr, metric []float64
	for _, r := range records {
		v := r.Value(m)
		if v == nil {
			continue
		}
		pairedDep = append(pairedDep, r.AvgDepDelay)
		pairedArr = append(pairedArr, r.AvgArrDelay)
		metric = append(metric, *v)
	}
	if len(metric) > 0 {
		s.MeanMetric = finite(stat.Mean(metric, nil))
	}
	if len(metric) >= 2 {
		s.DepCorrelation = finite(stat.Correlation(pairedDep, metric, nil))
		s.ArrCorrelation = finite(stat.Correlation(pairedArr, metric, nil))
	}
	return s
}

// finite drops NaN and Inf, which gonum returns for zero-variance input.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// CountMissing returns how many records lack a value for m.
func CountMissing(records []JoinedRecord, m Metric) int {
	n := 0
	for _, r := range records {
		if r.Value(m) == nil {
			n++
		}
	}
	return n
}
