package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// WorkloadVersion is the schema tag written into every run workload.
	WorkloadVersion = 2
	// DefaultMaxRepeatCount is the default upper bound of benchmark repetitions.
	DefaultMaxRepeatCount = 10
	// DefaultMaxRepeatSecs is the default upper bound of benchmark wall time.
	DefaultMaxRepeatSecs = 600
)

// Action identifies the direction of a transfer task
type Action string

const (
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
)

// ParseAction validates an action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionUpload, ActionDownload:
		return Action(s), nil
	}
	return "", &ValidationError{Field: "action", Value: s, Reason: `must be "upload" or "download"`}
}

// Checksum is the checksum algorithm a runner applies to transfers.
// The zero value means no checksum and is encoded as JSON null.
type Checksum string

const (
	ChecksumNone   Checksum = ""
	ChecksumCRC32  Checksum = "CRC32"
	ChecksumCRC32C Checksum = "CRC32C"
	ChecksumSHA1   Checksum = "SHA1"
	ChecksumSHA256 Checksum = "SHA256"
)

// ParseChecksum accepts the enumerated checksum names. Empty and "None" map to ChecksumNone.
func ParseChecksum(s string) (Checksum, error) {
	switch c := Checksum(s); c {
	case ChecksumNone, ChecksumCRC32, ChecksumCRC32C, ChecksumSHA1, ChecksumSHA256:
		return c, nil
	case "None":
		return ChecksumNone, nil
	}
	return "", &ValidationError{Field: "checksum", Value: s, Reason: "must be one of None, CRC32, CRC32C, SHA1, SHA256"}
}

func (c Checksum) MarshalJSON() ([]byte, error) {
	if c == ChecksumNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

func (c *Checksum) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ChecksumNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("checksum: %w", err)
	}
	parsed, err := ParseChecksum(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DirSuffix returns the lower-cased name used in object keys, or "" for no checksum.
func (c Checksum) DirSuffix() string {
	return strings.ToLower(string(c))
}

// Task is a single transfer operation.
type Task struct {
	Action Action `json:"action"`
	// Object key, e.g. "upload/10MiB-3x/1"
	Key  string `json:"key"`
	Size uint64 `json:"size"`
}

// WorkloadSpec is the run workload consumed by the file preparation tool and by every runner.
type WorkloadSpec struct {
	Version        int      `json:"version"`
	Comment        string   `json:"comment"`
	FilesOnDisk    bool     `json:"filesOnDisk"`
	Checksum       Checksum `json:"checksum"`
	MaxRepeatCount int      `json:"maxRepeatCount"`
	MaxRepeatSecs  int      `json:"maxRepeatSecs"`
	Tasks          []Task   `json:"tasks"`
}

// NewWorkloadSpec returns a spec carrying the library defaults and no tasks.
func NewWorkloadSpec() WorkloadSpec {
	return WorkloadSpec{
		Version:        WorkloadVersion,
		FilesOnDisk:    true,
		Checksum:       ChecksumNone,
		MaxRepeatCount: DefaultMaxRepeatCount,
		MaxRepeatSecs:  DefaultMaxRepeatSecs,
		Tasks:          []Task{},
	}
}

// Validate checks the invariants a runner relies on.
func (w *WorkloadSpec) Validate() error {
	if len(w.Tasks) == 0 {
		return &ValidationError{Field: "tasks", Reason: "workload has no tasks"}
	}
	if w.MaxRepeatCount <= 0 {
		return &ValidationError{Field: "maxRepeatCount", Value: fmt.Sprint(w.MaxRepeatCount), Reason: "must be positive"}
	}
	if w.MaxRepeatSecs <= 0 {
		return &ValidationError{Field: "maxRepeatSecs", Value: fmt.Sprint(w.MaxRepeatSecs), Reason: "must be positive"}
	}
	for i, t := range w.Tasks {
		if _, err := ParseAction(string(t.Action)); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		if t.Key == "" {
			return &ValidationError{Field: fmt.Sprintf("tasks[%d].key", i), Reason: "must not be empty"}
		}
	}
	return nil
}
