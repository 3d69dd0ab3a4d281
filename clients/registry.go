// Package clients describes the S3 clients that can be compared: how each one
// is built and which runner drives it.
package clients

import (
	"fmt"
	"sort"
	"strings"

	"github.com/s3bench/s3compare/model"
)

// BuildFamily selects the build (and clear) target of a client.
type BuildFamily int

const (
	FamilyNativeC BuildFamily = iota + 1
	FamilyPython
	FamilyJava
	FamilyRust
)

var familyTargets = map[BuildFamily]string{
	FamilyNativeC: "aws-c-s3",
	FamilyPython:  "python",
	FamilyJava:    "java",
	FamilyRust:    "rust",
}

// String returns the target name passed to the build and clear scripts.
func (f BuildFamily) String() string {
	if s, ok := familyTargets[f]; ok {
		return s
	}
	return fmt.Sprintf("BuildFamily(%d)", int(f))
}

// RunnerKind selects how the runner executable is launched.
type RunnerKind int

const (
	RunnerNativeBinary RunnerKind = iota + 1
	RunnerPythonScript
	RunnerJavaJar
	RunnerRustBinary
)

var runnerNames = map[RunnerKind]string{
	RunnerNativeBinary: "native-binary",
	RunnerPythonScript: "python-script",
	RunnerJavaJar:      "java-jar",
	RunnerRustBinary:   "rust-binary",
}

func (k RunnerKind) String() string {
	if s, ok := runnerNames[k]; ok {
		return s
	}
	return fmt.Sprintf("RunnerKind(%d)", int(k))
}

// Spec is the static description of a client.
type Spec struct {
	Name   string
	Family BuildFamily
	Runner RunnerKind
}

var registry = map[string]Spec{}

func register(family BuildFamily, runner RunnerKind, names ...string) {
	for _, name := range names {
		registry[name] = Spec{Name: name, Family: family, Runner: runner}
	}
}

func init() {
	register(FamilyNativeC, RunnerNativeBinary, "crt-c")
	register(FamilyPython, RunnerPythonScript,
		"crt-python", "boto3-crt", "boto3-classic", "cli-crt", "cli-classic")
	register(FamilyJava, RunnerJavaJar,
		"crt-java", "sdk-java-client-crt", "sdk-java-client-classic", "sdk-java-tm-crt", "sdk-java-tm-classic")
	register(FamilyRust, RunnerRustBinary, "sdk-rust-tm")

	if err := validateRegistry(); err != nil {
		panic(err)
	}
}

// validateRegistry checks every registered client resolves to a known build target and runner.
func validateRegistry() error {
	for name, spec := range registry {
		if _, ok := familyTargets[spec.Family]; !ok {
			return fmt.Errorf("client %s: unknown build family %d", name, int(spec.Family))
		}
		if _, ok := runnerNames[spec.Runner]; !ok {
			return fmt.Errorf("client %s: unknown runner kind %d", name, int(spec.Runner))
		}
	}
	return nil
}

// Lookup returns the spec of a known client.
func Lookup(name string) (Spec, error) {
	spec, ok := registry[name]
	if !ok {
		return Spec{}, &model.ValidationError{
			Field:  "client",
			Value:  name,
			Reason: "unknown client, expected one of " + strings.Join(Names(), ", "),
		}
	}
	return spec, nil
}

// Names returns all known client names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
