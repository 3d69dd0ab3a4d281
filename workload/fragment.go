package workload

import (
	"encoding/json"
	"fmt"

	"github.com/s3bench/s3compare/model"
)

// Fragment is one element of a JSON payload array. It is either a FullFragment,
// which already lists its tasks, or a CompactFragment, which is expanded.
type Fragment interface {
	// Resolve returns the fragment's tasks and whether its files live on disk.
	Resolve() ([]model.Task, bool, error)
}

// FullFragment carries pre-built tasks that are spliced in verbatim.
type FullFragment struct {
	Tasks       []model.Task `json:"tasks"`
	FilesOnDisk *bool        `json:"filesOnDisk,omitempty"`
}

func (f FullFragment) Resolve() ([]model.Task, bool, error) {
	return f.Tasks, f.FilesOnDisk == nil || *f.FilesOnDisk, nil
}

// CompactFragment is {action, fileSize, numFiles, filesOnDisk?}.
type CompactFragment struct {
	Action      string
	FileSize    string
	NumFiles    int
	FilesOnDisk bool
}

func (f CompactFragment) Resolve() ([]model.Task, bool, error) {
	tasks, err := Tasks(f.Action, f.FileSize, f.NumFiles, model.ChecksumNone)
	if err != nil {
		return nil, false, err
	}
	return tasks, f.FilesOnDisk, nil
}

type compactJSON struct {
	Action      *string `json:"action"`
	FileSize    *string `json:"fileSize"`
	NumFiles    *int    `json:"numFiles"`
	FilesOnDisk *bool   `json:"filesOnDisk"`
}

// DecodeFragment decodes one array element, choosing the variant by the presence of "tasks".
func DecodeFragment(raw json.RawMessage) (Fragment, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("payload fragment is not an object: %w", err)
	}

	if _, ok := probe["tasks"]; ok {
		var full FullFragment
		if err := json.Unmarshal(raw, &full); err != nil {
			return nil, fmt.Errorf("decode payload fragment: %w", err)
		}
		return full, nil
	}

	var c compactJSON
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode payload fragment: %w", err)
	}
	if c.Action == nil {
		return nil, &model.ValidationError{Field: "action", Reason: "required in compact payload fragment"}
	}
	if c.FileSize == nil {
		return nil, &model.ValidationError{Field: "fileSize", Reason: "required in compact payload fragment"}
	}
	compact := CompactFragment{
		Action:      *c.Action,
		FileSize:    *c.FileSize,
		NumFiles:    1,
		FilesOnDisk: true,
	}
	if c.NumFiles != nil {
		compact.NumFiles = *c.NumFiles
	}
	if c.FilesOnDisk != nil {
		compact.FilesOnDisk = *c.FilesOnDisk
	}
	return compact, nil
}
