package workload

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s3bench/s3compare/model"
)

func keys(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Key)
	}
	return out
}

func TestCompileKeys(t *testing.T) {
	spec, err := Compile(Options{Action: "upload", FileSize: "10MiB", NumFiles: 3, FilesOnDisk: true})
	require.NoError(t, err)

	require.Equal(t, []string{"upload/10MiB-3x/1", "upload/10MiB-3x/2", "upload/10MiB-3x/3"}, keys(spec.Tasks))
	for _, task := range spec.Tasks {
		require.Equal(t, model.ActionUpload, task.Action)
		require.Equal(t, uint64(10485760), task.Size)
	}
	require.Equal(t, model.WorkloadVersion, spec.Version)
	require.Equal(t, model.DefaultMaxRepeatCount, spec.MaxRepeatCount)
	require.Equal(t, model.DefaultMaxRepeatSecs, spec.MaxRepeatSecs)
	require.True(t, spec.FilesOnDisk)
}

func TestTasksPadding(t *testing.T) {
	tests := []struct {
		numFiles  int
		wantFirst string
		wantLast  string
	}{
		{1, "download/1KiB-1x/1", "download/1KiB-1x/1"},
		{9, "download/1KiB-9x/1", "download/1KiB-9x/9"},
		{10, "download/1KiB-10x/01", "download/1KiB-10x/10"},
		{100, "download/1KiB-100x/001", "download/1KiB-100x/100"},
		{10000, "download/1KiB-10_000x/00001", "download/1KiB-10_000x/10000"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.numFiles), func(t *testing.T) {
			tasks, err := Tasks("download", "1KiB", tt.numFiles, model.ChecksumNone)
			require.NoError(t, err)
			require.Len(t, tasks, tt.numFiles)
			require.Equal(t, tt.wantFirst, tasks[0].Key)
			require.Equal(t, tt.wantLast, tasks[len(tasks)-1].Key)

			// lexical order matches numeric order
			for i := 1; i < len(tasks); i++ {
				require.Less(t, tasks[i-1].Key, tasks[i].Key)
			}
		})
	}
}

func TestCompileDeterministic(t *testing.T) {
	opts := Options{Action: "download", FileSize: "256KiB", NumFiles: 1234, Checksum: "CRC32C"}

	first, err := Compile(opts)
	require.NoError(t, err)
	second, err := Compile(opts)
	require.NoError(t, err)

	require.Equal(t, first, second)

	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, first))
	require.NoError(t, Encode(&b, second))
	require.Equal(t, a.String(), b.String())
}

func TestCompileChecksumDirName(t *testing.T) {
	spec, err := Compile(Options{Action: "upload", FileSize: "5GiB", NumFiles: 1, Checksum: "SHA256"})
	require.NoError(t, err)
	require.Equal(t, model.ChecksumSHA256, spec.Checksum)
	require.Equal(t, "upload/5GiB-1x-sha256/1", spec.Tasks[0].Key)
}

func TestCompileOverrides(t *testing.T) {
	spec, err := Compile(Options{
		Action:         "upload",
		FileSize:       "1byte",
		NumFiles:       2,
		Comment:        "tiny",
		MaxRepeatCount: 3,
		MaxRepeatSecs:  30,
	})
	require.NoError(t, err)
	require.Equal(t, "tiny", spec.Comment)
	require.Equal(t, 3, spec.MaxRepeatCount)
	require.Equal(t, 30, spec.MaxRepeatSecs)
	require.False(t, spec.FilesOnDisk)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantField string
	}{
		{"unknown action", Options{Action: "copy", FileSize: "1KiB", NumFiles: 1}, "action"},
		{"unknown checksum", Options{Action: "upload", FileSize: "1KiB", NumFiles: 1, Checksum: "MD5"}, "checksum"},
		{"bad size", Options{Action: "upload", FileSize: "1KB", NumFiles: 1}, "size"},
		{"zero files", Options{Action: "upload", FileSize: "1KiB", NumFiles: 0}, "numFiles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.opts)
			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestGroupDigits(t *testing.T) {
	for in, want := range map[int]string{
		1:       "1",
		999:     "999",
		1000:    "1_000",
		10000:   "10_000",
		123456:  "123_456",
		1234567: "1_234_567",
	} {
		require.Equal(t, want, groupDigits(in))
	}
}
