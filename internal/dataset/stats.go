package dataset

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SplitStats carries descriptive statistics over the fully valid label files
// of a split: bbox area distribution and instances-per-image quantiles. They
// are informational only and never produce diagnostics.
type SplitStats struct {
	BBoxAreaMean   float64 `json:"bbox_area_mean"`
	BBoxAreaStdDev float64 `json:"bbox_area_stddev"`
	InstancesP50   float64 `json:"instances_p50"`
	InstancesP95   float64 `json:"instances_p95"`
}

// summarizeSplit computes distribution stats from per-box areas and per-file
// instance counts. Empty inputs yield zero values.
func summarizeSplit(areas, instanceCounts []float64) SplitStats {
	var s SplitStats

	if len(areas) > 0 {
		s.BBoxAreaMean = stat.Mean(areas, nil)
		if len(areas) > 1 {
			s.BBoxAreaStdDev = stat.StdDev(areas, nil)
		}
	}

	if len(instanceCounts) > 0 {
		sorted := make([]float64, len(instanceCounts))
		copy(sorted, instanceCounts)
		sort.Float64s(sorted)
		s.InstancesP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
		s.InstancesP95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}

	return s
}
