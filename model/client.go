package model

import "fmt"

// ClientDescriptor identifies one side of a comparison.
type ClientDescriptor struct {
	// Name selects both the build family and the runner, e.g. "crt-c"
	Name string `json:"name"`
	// Branch is the git ref checked out before building
	Branch string `json:"branch"`
	// RepoPath is the client's source checkout, relative to the benchmarks root
	RepoPath string `json:"repo_path"`
}

// Label is the column heading used in reports.
func (c ClientDescriptor) Label() string {
	return fmt.Sprintf("%s:%s", c.Name, c.Branch)
}
