package runreport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s3bench/s3compare/model"
)

func TestParser_Parse(t *testing.T) {
	output := `Configuring client crt-c
Run:1 Secs:0.50 Gb/s:10.20
Run:2 Secs:0.40 Gb/s:12.75
some diagnostic line Gb/s without a run
Overall Throughput (Gb/s) Median:11.47 Mean:11.47 Min:10.20 Max:12.75 Variance:1.63
Overall Duration (Secs) Median:0.45 Mean:0.45 Min:0.40 Max:0.50
Peak RSS:256.4 MiB
`

	metrics, err := New().Parse(strings.NewReader(output))
	require.NoError(t, err)

	require.Equal(t, []model.Run{
		{Index: 1, DurationSecs: 0.50, ThroughputGbps: 10.20},
		{Index: 2, DurationSecs: 0.40, ThroughputGbps: 12.75},
	}, metrics.Runs)
	require.Equal(t, &model.Aggregate{Median: 11.47, Mean: 11.47, Min: 10.20, Max: 12.75}, metrics.Throughput)
	require.Equal(t, &model.Aggregate{Median: 0.45, Mean: 0.45, Min: 0.40, Max: 0.50}, metrics.Duration)
	require.NotNil(t, metrics.PeakRSSMiB)
	require.InDelta(t, 256.4, *metrics.PeakRSSMiB, 1e-9)
}

func TestParser_ParsePartial(t *testing.T) {
	output := "Run:1 Secs:0.50 Gb/s:10.20\n" +
		"Overall Throughput (Gb/s) Median:10.20 Mean:10.20 Min:10.20 Max:10.20\n"

	metrics, err := ParseString(output)
	require.NoError(t, err)

	require.Equal(t, []model.Run{{Index: 1, DurationSecs: 0.50, ThroughputGbps: 10.20}}, metrics.Runs)
	require.Equal(t, &model.Aggregate{Median: 10.20, Mean: 10.20, Min: 10.20, Max: 10.20}, metrics.Throughput)
	require.Nil(t, metrics.Duration)
	require.Nil(t, metrics.PeakRSSMiB)
}

func TestParser_ParseEmpty(t *testing.T) {
	metrics, err := ParseString("")
	require.NoError(t, err)
	require.Empty(t, metrics.Runs)
	require.Nil(t, metrics.Throughput)
	require.Nil(t, metrics.Duration)
	require.Nil(t, metrics.PeakRSSMiB)
}

func TestParser_LastAggregateWins(t *testing.T) {
	output := "Overall Throughput (Gb/s) Median:1.00 Mean:1.00 Min:1.00 Max:1.00\n" +
		"Peak RSS:100 MiB\n" +
		"Overall Throughput (Gb/s) Median:2.00 Mean:3.00 Min:1.00 Max:4.00\n" +
		"Peak RSS:150.5 MiB\n"

	metrics, err := ParseString(output)
	require.NoError(t, err)
	require.Equal(t, &model.Aggregate{Median: 2, Mean: 3, Min: 1, Max: 4}, metrics.Throughput)
	require.InDelta(t, 150.5, *metrics.PeakRSSMiB, 1e-9)
}

func TestParser_RunsKeepEncounterOrder(t *testing.T) {
	output := "Run:3 Secs:1 Gb/s:3\nRun:1 Secs:1 Gb/s:1\nRun:2 Secs:1 Gb/s:2\n"

	metrics, err := ParseString(output)
	require.NoError(t, err)
	require.Len(t, metrics.Runs, 3)
	require.Equal(t, 3, metrics.Runs[0].Index)
	require.Equal(t, 1, metrics.Runs[1].Index)
	require.Equal(t, 2, metrics.Runs[2].Index)
}

func TestParser_IgnoresMalformedNumbers(t *testing.T) {
	output := "Run:1 Secs:0.5.1 Gb/s:10\nPeak RSS:1.2.3 MiB\n"

	metrics, err := ParseString(output)
	require.NoError(t, err)
	require.Empty(t, metrics.Runs)
	require.Nil(t, metrics.PeakRSSMiB)
}

func TestParser_LongLine(t *testing.T) {
	output := strings.Repeat("x", 200*1024) + "\nRun:1 Secs:1 Gb/s:2\n"

	metrics, err := ParseString(output)
	require.NoError(t, err)
	require.Len(t, metrics.Runs, 1)
}
