package workload

import (
	"strconv"
	"strings"

	"github.com/s3bench/s3compare/model"
)

const ramSuffix = "-ram"

// Name is a parsed workload name such as "download-5GiB-10_000x-ram".
type Name struct {
	Action      string
	FileSize    string
	NumFiles    int
	FilesOnDisk bool
}

// ParseName parses {action}-{size}-{count}x[-ram][.json].
func ParseName(name string) (Name, error) {
	s := strings.TrimSuffix(name, ".json")

	n := Name{FilesOnDisk: true}
	if strings.HasSuffix(s, ramSuffix) {
		n.FilesOnDisk = false
		s = strings.TrimSuffix(s, ramSuffix)
	}

	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return Name{}, &model.ValidationError{Field: "workload name", Value: name, Reason: "expected {action}-{size}-{count}x[-ram]"}
	}
	if _, err := model.ParseAction(parts[0]); err != nil {
		return Name{}, err
	}
	n.Action = parts[0]
	n.FileSize = parts[1]

	count := strings.Join(parts[2:], "-")
	if !strings.HasSuffix(count, "x") {
		return Name{}, &model.ValidationError{Field: "workload count", Value: count, Reason: `must end with "x"`}
	}
	num, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSuffix(count, "x"), "_", ""))
	if err != nil {
		return Name{}, &model.ValidationError{Field: "workload count", Value: count, Reason: "not an integer"}
	}
	n.NumFiles = num
	return n, nil
}

// Tasks expands the name without checksum.
func (n Name) Tasks() ([]model.Task, error) {
	return Tasks(n.Action, n.FileSize, n.NumFiles, model.ChecksumNone)
}
