package workload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/s3bench/s3compare/model"
)

// Source is a hand-written workload description from workloads/src.
type Source struct {
	Action         string  `json:"action"`
	FileSize       string  `json:"fileSize"`
	Comment        string  `json:"comment"`
	NumFiles       *int    `json:"numFiles"`
	FilesOnDisk    *bool   `json:"filesOnDisk"`
	Checksum       *string `json:"checksum"`
	MaxRepeatCount int     `json:"maxRepeatCount"`
	MaxRepeatSecs  int     `json:"maxRepeatSecs"`
}

// Options converts the source into compiler options, applying defaults.
func (s Source) Options() (Options, error) {
	if s.Action == "" {
		return Options{}, &model.ValidationError{Field: "action", Reason: "required"}
	}
	if s.FileSize == "" {
		return Options{}, &model.ValidationError{Field: "fileSize", Reason: "required"}
	}
	opts := Options{
		Action:         s.Action,
		FileSize:       s.FileSize,
		Comment:        s.Comment,
		NumFiles:       1,
		FilesOnDisk:    true,
		MaxRepeatCount: s.MaxRepeatCount,
		MaxRepeatSecs:  s.MaxRepeatSecs,
	}
	if s.NumFiles != nil {
		opts.NumFiles = *s.NumFiles
	}
	if s.FilesOnDisk != nil {
		opts.FilesOnDisk = *s.FilesOnDisk
	}
	if s.Checksum != nil {
		opts.Checksum = *s.Checksum
	}
	return opts, nil
}

// BuildFile compiles the source workload at path.
func BuildFile(path string) (model.WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WorkloadSpec{}, fmt.Errorf("failed to read workload source: %w", err)
	}
	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		return model.WorkloadSpec{}, fmt.Errorf("failed to parse workload source %s: %w", path, err)
	}
	opts, err := src.Options()
	if err != nil {
		return model.WorkloadSpec{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return Compile(opts)
}

// Encode writes spec as 4-space indented JSON followed by a newline.
// Text fields are written verbatim, without HTML escaping.
func Encode(w io.Writer, spec model.WorkloadSpec) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("failed to encode workload: %w", err)
	}
	return nil
}

// WriteFile encodes spec into path.
func WriteFile(path string, spec model.WorkloadSpec) error {
	var buf bytes.Buffer
	if err := Encode(&buf, spec); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create workload directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write workload: %w", err)
	}
	return nil
}
