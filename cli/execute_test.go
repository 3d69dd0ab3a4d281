package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/s3bench/s3compare/cli/proc"
	"github.com/s3bench/s3compare/clients"
)

func TestExecuteRelativeRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}

	root := t.TempDir()
	bin := filepath.Join(root, "install", "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "files"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "s3-c"),
		[]byte("#!/bin/sh\npwd\necho \"Run:1 Secs:0.50 Gb/s:10.20 $1\"\n"), 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	layout, err := clients.NewLayout(".")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(layout.Root))

	spec, err := clients.Lookup("crt-c")
	require.NoError(t, err)

	orch := &Orchestrator{
		logger: zerolog.Nop(),
		runner: proc.NewExec(zerolog.Nop()),
		layout: layout,
		diag:   io.Discard,
	}
	output, err := orch.execute(context.Background(), spec, clients.RunnerArgs{
		WorkloadPath: "workload.json",
		Bucket:       "bench-bucket",
		Region:       "us-west-2",
		Throughput:   "10",
	})
	require.NoError(t, err)
	require.Contains(t, output, "Run:1 Secs:0.50 Gb/s:10.20 crt-c")
	require.Contains(t, output, string(filepath.Separator)+"files\n")
}
