package report

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "s3compare"

// WriteTextfile exports the compared metrics in the Prometheus text format, for
// pick-up by the node exporter textfile collector.
func WriteTextfile(path string, columns ...Column) error {
	reg := prometheus.NewRegistry()

	throughput := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "throughput_gbps",
		Help:      "Aggregate throughput reported by the runner, in Gb/s.",
	}, []string{"client", "branch", "stat"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "Aggregate workload duration reported by the runner.",
	}, []string{"client", "branch", "stat"})
	runThroughput := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_throughput_gbps",
		Help:      "Throughput of a single run, in Gb/s.",
	}, []string{"client", "branch", "run"})
	peakRSS := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "peak_rss_mebibytes",
		Help:      "Peak resident memory of the runner, in MiB.",
	}, []string{"client", "branch"})

	reg.MustRegister(throughput, duration, runThroughput, peakRSS)

	for _, c := range columns {
		name, branch := c.Client.Name, c.Client.Branch
		if agg := c.Metrics.Throughput; agg != nil {
			throughput.WithLabelValues(name, branch, "median").Set(agg.Median)
			throughput.WithLabelValues(name, branch, "mean").Set(agg.Mean)
			throughput.WithLabelValues(name, branch, "min").Set(agg.Min)
			throughput.WithLabelValues(name, branch, "max").Set(agg.Max)
		}
		if agg := c.Metrics.Duration; agg != nil {
			duration.WithLabelValues(name, branch, "median").Set(agg.Median)
			duration.WithLabelValues(name, branch, "mean").Set(agg.Mean)
			duration.WithLabelValues(name, branch, "min").Set(agg.Min)
			duration.WithLabelValues(name, branch, "max").Set(agg.Max)
		}
		for _, run := range c.Metrics.Runs {
			runThroughput.WithLabelValues(name, branch, strconv.Itoa(run.Index)).Set(run.ThroughputGbps)
		}
		if c.Metrics.PeakRSSMiB != nil {
			peakRSS.WithLabelValues(name, branch).Set(*c.Metrics.PeakRSSMiB)
		}
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
