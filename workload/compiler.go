package workload

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/s3bench/s3compare/model"
)

// Options describes a compact workload: numFiles objects of one size and one action.
type Options struct {
	Action      string
	FileSize    string
	NumFiles    int
	FilesOnDisk bool
	Checksum    string
	Comment     string
	// Zero means model.DefaultMaxRepeatCount
	MaxRepeatCount int
	// Zero means model.DefaultMaxRepeatSecs
	MaxRepeatSecs int
}

// Compile expands opts into a run workload. The result depends only on opts.
func Compile(opts Options) (model.WorkloadSpec, error) {
	checksum, err := model.ParseChecksum(opts.Checksum)
	if err != nil {
		return model.WorkloadSpec{}, err
	}
	tasks, err := Tasks(opts.Action, opts.FileSize, opts.NumFiles, checksum)
	if err != nil {
		return model.WorkloadSpec{}, err
	}

	spec := model.NewWorkloadSpec()
	spec.Comment = opts.Comment
	spec.FilesOnDisk = opts.FilesOnDisk
	spec.Checksum = checksum
	spec.Tasks = tasks
	if opts.MaxRepeatCount != 0 {
		spec.MaxRepeatCount = opts.MaxRepeatCount
	}
	if opts.MaxRepeatSecs != 0 {
		spec.MaxRepeatSecs = opts.MaxRepeatSecs
	}
	if err := spec.Validate(); err != nil {
		return model.WorkloadSpec{}, err
	}
	return spec, nil
}

// Tasks generates the ordered task list for numFiles objects of sizeToken.
//
// Keys have the form {action}/{dirname}/{index}. The index is zero padded to the
// digit count of numFiles so lexical and numeric order agree, and dirname encodes
// size, count and checksum so distinct workloads never share objects.
func Tasks(action, sizeToken string, numFiles int, checksum model.Checksum) ([]model.Task, error) {
	act, err := model.ParseAction(action)
	if err != nil {
		return nil, err
	}
	size, err := ParseSize(sizeToken)
	if err != nil {
		return nil, err
	}
	if numFiles < 1 {
		return nil, &model.ValidationError{Field: "numFiles", Value: strconv.Itoa(numFiles), Reason: "must be at least 1"}
	}

	dirname := DirName(sizeToken, numFiles, checksum)
	width := len(strconv.Itoa(numFiles))

	tasks := make([]model.Task, 0, numFiles)
	for i := 1; i <= numFiles; i++ {
		tasks = append(tasks, model.Task{
			Action: act,
			Key:    fmt.Sprintf("%s/%s/%0*d", act, dirname, width, i),
			Size:   size,
		})
	}
	return tasks, nil
}

// DirName returns the key component shared by all objects of a workload, e.g. "5GiB-10_000x-crc32".
func DirName(sizeToken string, numFiles int, checksum model.Checksum) string {
	dirname := fmt.Sprintf("%s-%sx", sizeToken, groupDigits(numFiles))
	if suffix := checksum.DirSuffix(); suffix != "" {
		dirname += "-" + suffix
	}
	return dirname
}

// groupDigits formats n with "_" between groups of three digits.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
