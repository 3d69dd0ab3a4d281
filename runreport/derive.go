package runreport

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/s3bench/s3compare/model"
)

// DeriveAggregates fills missing throughput and duration aggregates from the
// per-run lines. Aggregates reported by the runner are never replaced.
func DeriveAggregates(m model.MetricSet) model.MetricSet {
	if len(m.Runs) == 0 {
		return m
	}

	secs := make([]float64, 0, len(m.Runs))
	gbps := make([]float64, 0, len(m.Runs))
	for _, r := range m.Runs {
		secs = append(secs, r.DurationSecs)
		gbps = append(gbps, r.ThroughputGbps)
	}

	if m.Throughput == nil {
		m.Throughput = summarize(gbps)
	}
	if m.Duration == nil {
		m.Duration = summarize(secs)
	}
	return m
}

func summarize(xs []float64) *model.Aggregate {
	sample := stats.Sample{Xs: append([]float64(nil), xs...)}
	sample.Sort()
	lo, hi := sample.Bounds()
	return &model.Aggregate{
		Median: median(sample.Xs),
		Mean:   sample.Mean(),
		Min:    lo,
		Max:    hi,
	}
}

// median of sorted xs, averaging the middle pair for even lengths.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}
