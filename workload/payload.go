package workload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s3bench/s3compare/model"
)

// ParsePayload combines payload arguments into a single run workload.
//
// A single argument ending in ".json" is read as a file; anything else is a list of
// workload names. Task lists are concatenated in argument order and filesOnDisk is
// the AND of every part.
func ParsePayload(logger zerolog.Logger, args []string) (model.WorkloadSpec, error) {
	if len(args) == 0 {
		return model.WorkloadSpec{}, &model.ValidationError{Field: "payload", Reason: "at least one workload name or a .json file is required"}
	}

	var (
		spec model.WorkloadSpec
		err  error
	)
	if len(args) == 1 && strings.HasSuffix(args[0], ".json") {
		spec, err = parsePayloadFile(logger, args[0])
	} else {
		spec, err = parsePayloadNames(logger, args)
	}
	if err != nil {
		return model.WorkloadSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return model.WorkloadSpec{}, err
	}

	logger.Debug().
		Int("tasks", len(spec.Tasks)).
		Bool("files_on_disk", spec.FilesOnDisk).
		Msg("Parsed payload")
	return spec, nil
}

func parsePayloadNames(logger zerolog.Logger, names []string) (model.WorkloadSpec, error) {
	spec := model.NewWorkloadSpec()
	for _, name := range names {
		logger.Debug().Str("name", name).Msg("Parsing workload name")
		n, err := ParseName(name)
		if err != nil {
			return model.WorkloadSpec{}, err
		}
		tasks, err := n.Tasks()
		if err != nil {
			return model.WorkloadSpec{}, fmt.Errorf("workload %s: %w", name, err)
		}
		spec.Tasks = append(spec.Tasks, tasks...)
		spec.FilesOnDisk = spec.FilesOnDisk && n.FilesOnDisk
	}
	return spec, nil
}

func parsePayloadFile(logger zerolog.Logger, path string) (model.WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.WorkloadSpec{}, &model.ValidationError{Field: "payload file", Value: path, Reason: "not found"}
		}
		return model.WorkloadSpec{}, fmt.Errorf("failed to read payload file: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Loading payload file")

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return model.WorkloadSpec{}, fmt.Errorf("failed to parse payload file %s: %w", path, err)
		}
		return combineFragments(raws)
	}

	// A single object is the workload itself; defaults fill only absent fields.
	spec := model.NewWorkloadSpec()
	if err := json.Unmarshal(trimmed, &spec); err != nil {
		return model.WorkloadSpec{}, fmt.Errorf("failed to parse payload file %s: %w", path, err)
	}
	return spec, nil
}

func combineFragments(raws []json.RawMessage) (model.WorkloadSpec, error) {
	spec := model.NewWorkloadSpec()
	for i, raw := range raws {
		frag, err := DecodeFragment(raw)
		if err != nil {
			return model.WorkloadSpec{}, fmt.Errorf("payload element %d: %w", i, err)
		}
		tasks, onDisk, err := frag.Resolve()
		if err != nil {
			return model.WorkloadSpec{}, fmt.Errorf("payload element %d: %w", i, err)
		}
		spec.Tasks = append(spec.Tasks, tasks...)
		spec.FilesOnDisk = spec.FilesOnDisk && onDisk
	}
	return spec, nil
}
