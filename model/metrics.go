package model

// Run is one repetition reported by a runner.
type Run struct {
	Index          int     `json:"run"`
	DurationSecs   float64 `json:"secs"`
	ThroughputGbps float64 `json:"gbps"`
}

// Aggregate summarises a metric across runs.
type Aggregate struct {
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// MetricSet holds everything extracted from one runner's report.
// Nil pointers mean the runner did not report the value.
type MetricSet struct {
	Runs       []Run      `json:"runs"`
	Throughput *Aggregate `json:"throughput,omitempty"`
	Duration   *Aggregate `json:"duration,omitempty"`
	PeakRSSMiB *float64   `json:"peak_rss_mib,omitempty"`
}
