package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s3bench/s3compare/model"
)

func runApp(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := newApp(newFakeRunner(), &stdout, &stderr).Main(append([]string{AppName}, args...))
	return code, stderr.String()
}

func readWorkload(t *testing.T, path string) model.WorkloadSpec {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var spec model.WorkloadSpec
	require.NoError(t, json.Unmarshal(data, &spec))
	return spec
}

func TestWorkloadBuild(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "workloads", "src")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "upload-256KiB-3x.json"),
		[]byte(`{"action": "upload", "fileSize": "256KiB", "numFiles": 3, "checksum": "CRC32"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "download-1GiB-1x.json"),
		[]byte(`{"action": "download", "fileSize": "1GiB", "comment": "single large object"}`), 0644))

	code, stderr := runApp(t, "--root", root, "workload", "build")
	require.Equal(t, 0, code, stderr)

	upload := readWorkload(t, filepath.Join(root, "workloads", "run", "upload-256KiB-3x.json"))
	require.Len(t, upload.Tasks, 3)
	require.Equal(t, model.Checksum("CRC32"), upload.Checksum)
	require.Equal(t, "upload/256KiB-3x-crc32/1", upload.Tasks[0].Key)

	download := readWorkload(t, filepath.Join(root, "workloads", "run", "download-1GiB-1x.json"))
	require.Equal(t, "single large object", download.Comment)
	require.Equal(t, uint64(1<<30), download.Tasks[0].Size)
	require.True(t, download.FilesOnDisk)
}

func TestWorkloadBuildErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "workloads", "src"), 0755))

	code, stderr := runApp(t, "--root", root, "workload", "build")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "no workload sources found")

	code, stderr = runApp(t, "--root", root, "workload", "build", filepath.Join(root, "missing.json"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "workload source not found")
}

func TestWorkloadGenerate(t *testing.T) {
	output := filepath.Join(t.TempDir(), "run", "tmp.json")

	code, stderr := runApp(t, "workload", "generate", "--filename", "download-15MiB-10x-ram.json", "-o", output)
	require.Equal(t, 0, code, stderr)

	spec := readWorkload(t, output)
	require.Equal(t, "Temporary workload generated from download-15MiB-10x-ram.json", spec.Comment)
	require.False(t, spec.FilesOnDisk)
	require.Len(t, spec.Tasks, 10)
	require.Equal(t, "download/15MiB-10x/01", spec.Tasks[0].Key)
	require.Equal(t, "download/15MiB-10x/10", spec.Tasks[9].Key)
}
