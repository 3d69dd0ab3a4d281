package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s3bench/s3compare/model"
)

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compare.prom")

	left := Column{Client: model.ClientDescriptor{Name: "crt-c", Branch: "main"}, Metrics: fullMetrics()}
	left.Metrics.Runs = []model.Run{{Index: 1, DurationSecs: 0.5, ThroughputGbps: 10.5}}
	right := Column{Client: model.ClientDescriptor{Name: "crt-c", Branch: "next"}}

	require.NoError(t, WriteTextfile(path, left, right))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	require.Contains(t, out, `s3compare_throughput_gbps{branch="main",client="crt-c",stat="median"} 45.2`)
	require.Contains(t, out, `s3compare_duration_seconds{branch="main",client="crt-c",stat="max"} 0.95`)
	require.Contains(t, out, `s3compare_run_throughput_gbps{branch="main",client="crt-c",run="1"} 10.5`)
	require.Contains(t, out, `s3compare_peak_rss_mebibytes{branch="main",client="crt-c"} 256.4`)
	require.NotContains(t, out, `branch="next"`)
}
