package cli

// This file contains management of the temporary workload artifact that is
// shared by both clients of a comparison.

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/s3bench/s3compare/model"
	"github.com/s3bench/s3compare/workload"
)

const workloadPattern = "s3compare-workload-*.json"

// workloadArtifact is the serialized workload on disk together with the
// fingerprint of the bytes that were written.
type workloadArtifact struct {
	Path string
	sum  uint64
}

func writeWorkloadArtifact(spec model.WorkloadSpec) (*workloadArtifact, error) {
	var buf bytes.Buffer
	if err := workload.Encode(&buf, spec); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", workloadPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create workload file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write workload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write workload file: %w", err)
	}

	return &workloadArtifact{Path: f.Name(), sum: xxhash.Sum64(buf.Bytes())}, nil
}

// Fingerprint returns the xxhash of the written workload as hex.
func (w *workloadArtifact) Fingerprint() string {
	return fmt.Sprintf("%016x", w.sum)
}

// Verify fails if the file no longer holds the bytes that were written.
func (w *workloadArtifact) Verify() error {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		return fmt.Errorf("failed to read workload file: %w", err)
	}
	if sum := xxhash.Sum64(data); sum != w.sum {
		return fmt.Errorf("workload file %s changed: fingerprint %016x, expected %016x", w.Path, sum, w.sum)
	}
	return nil
}

// Remove deletes the artifact. A file that is already gone is not an error.
func (w *workloadArtifact) Remove() error {
	if err := os.Remove(w.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove workload file: %w", err)
	}
	return nil
}
