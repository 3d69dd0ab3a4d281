// Package workload turns compact workload descriptions into run workloads.
package workload

import (
	"regexp"
	"strconv"

	"github.com/s3bench/s3compare/model"
)

var sizeRe = regexp.MustCompile(`^(\d+)(KiB|MiB|GiB|bytes|byte)$`)

var sizeUnits = map[string]uint64{
	"byte":  1,
	"bytes": 1,
	"KiB":   1 << 10,
	"MiB":   1 << 20,
	"GiB":   1 << 30,
}

// ParseSize returns the size in bytes of a token like "5GiB", "10KiB" or "1byte".
func ParseSize(token string) (uint64, error) {
	m := sizeRe.FindStringSubmatch(token)
	if m == nil {
		return 0, &model.ValidationError{Field: "size", Value: token, Reason: `expected something like "1KiB"`}
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, &model.ValidationError{Field: "size", Value: token, Reason: err.Error()}
	}
	unit := sizeUnits[m[2]]
	if n > ^uint64(0)/unit {
		return 0, &model.ValidationError{Field: "size", Value: token, Reason: "overflows 64 bits"}
	}
	return n * unit, nil
}
