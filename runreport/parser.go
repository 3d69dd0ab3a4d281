// Package runreport extracts performance metrics from the text report a
// benchmark runner prints. The report format belongs to the runners and is
// unversioned, so every pattern it relies on lives in this package.
package runreport

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/s3bench/s3compare/model"
)

var (
	// Run:1 Secs:0.5 Gb/s:10.2
	runRe = regexp.MustCompile(`Run:(\d+)\s+Secs:([\d.]+)\s+Gb/s:([\d.]+)`)
	// Overall Throughput (Gb/s) Median:45.2 Mean:44.9 Min:42.1 Max:46.8
	throughputRe = regexp.MustCompile(`Overall Throughput \(Gb/s\)\s+Median:([\d.]+)\s+Mean:([\d.]+)\s+Min:([\d.]+)\s+Max:([\d.]+)`)
	// Overall Duration (Secs) Median:0.88 Mean:0.89 Min:0.85 Max:0.95
	durationRe = regexp.MustCompile(`Overall Duration \(Secs\)\s+Median:([\d.]+)\s+Mean:([\d.]+)\s+Min:([\d.]+)\s+Max:([\d.]+)`)
	// Peak RSS:256.4 MiB
	peakRSSRe = regexp.MustCompile(`Peak RSS:([\d.]+)\s+MiB`)
)

// maxLineSize bounds a single report line. Runners may print long diagnostic lines.
const maxLineSize = 1024 * 1024

// Parser parses runner reports
type Parser struct {
	metrics model.MetricSet
}

// New creates a new parser instance
func New() *Parser {
	return &Parser{}
}

// Parse reads a runner report and returns the metrics found in it.
//
// Lines are matched independently of each other. Runs are kept in encounter
// order, aggregate and peak memory lines overwrite earlier ones, and lines
// matching nothing are ignored. Missing metrics are left unset.
func (p *Parser) Parse(reader io.Reader) (model.MetricSet, error) {
	p.metrics = model.MetricSet{Runs: []model.Run{}}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.parseLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return model.MetricSet{}, fmt.Errorf("error reading runner output: %w", err)
	}

	return p.metrics, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(output string) (model.MetricSet, error) {
	return New().Parse(strings.NewReader(output))
}

func (p *Parser) parseLine(line string) {
	if m := runRe.FindStringSubmatch(line); m != nil {
		if run, ok := parseRun(m[1:]); ok {
			p.metrics.Runs = append(p.metrics.Runs, run)
		}
	}

	if m := throughputRe.FindStringSubmatch(line); m != nil {
		if agg, ok := parseAggregate(m[1:]); ok {
			p.metrics.Throughput = agg
		}
	}

	if m := durationRe.FindStringSubmatch(line); m != nil {
		if agg, ok := parseAggregate(m[1:]); ok {
			p.metrics.Duration = agg
		}
	}

	if m := peakRSSRe.FindStringSubmatch(line); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.metrics.PeakRSSMiB = &v
		}
	}
}

func parseRun(groups []string) (model.Run, bool) {
	index, err := strconv.Atoi(groups[0])
	if err != nil {
		return model.Run{}, false
	}
	values, ok := parseFloats(groups[1:])
	if !ok {
		return model.Run{}, false
	}
	return model.Run{Index: index, DurationSecs: values[0], ThroughputGbps: values[1]}, true
}

func parseAggregate(groups []string) (*model.Aggregate, bool) {
	values, ok := parseFloats(groups)
	if !ok {
		return nil, false
	}
	return &model.Aggregate{Median: values[0], Mean: values[1], Min: values[2], Max: values[3]}, true
}

// parseFloats rejects the whole group if any value is malformed (e.g. "1.2.3").
func parseFloats(groups []string) ([]float64, bool) {
	values := make([]float64, len(groups))
	for i, g := range groups {
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
