package clients

import (
	"fmt"
	"path/filepath"
)

// Layout locates scripts, build outputs and runners inside a benchmarks checkout.
// Root must be absolute: runners start in FilesDir, so relative paths would
// resolve against the wrong directory.
type Layout struct {
	Root string
}

// NewLayout returns the layout of the checkout at root, made absolute.
func NewLayout(root string) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	return Layout{Root: abs}, nil
}

func (l Layout) path(elem ...string) string {
	return filepath.Join(append([]string{l.Root}, elem...)...)
}

// FilesDir is where the preparation tool creates files and where runners execute.
func (l Layout) FilesDir() string { return l.path("files") }

func (l Layout) ScriptsDir() string { return l.path("scripts") }

func (l Layout) BuildScript() string { return filepath.Join(l.ScriptsDir(), "build.sh") }

func (l Layout) ClearScript() string { return filepath.Join(l.ScriptsDir(), "clear.sh") }

func (l Layout) PrepScript() string { return filepath.Join(l.ScriptsDir(), "py", "prep-s3-files.py") }

// RepoDir resolves a client repository path relative to the root.
func (l Layout) RepoDir(repoPath string) string {
	if filepath.IsAbs(repoPath) {
		return repoPath
	}
	return l.path(repoPath)
}

// RunnerArgs are the positional arguments every runner accepts, in order.
type RunnerArgs struct {
	WorkloadPath string
	Bucket       string
	Region       string
	Throughput   string
}

// CommandConfig holds the resolved command, arguments and extra environment
// needed to launch a runner.
type CommandConfig struct {
	Binary string
	Args   []string
	Env    []string
}

// RunnerCommand returns how to launch the runner for spec. Only the executable
// differs between runner kinds; the positional contract is shared.
func (l Layout) RunnerCommand(spec Spec, args RunnerArgs) (CommandConfig, error) {
	positional := []string{spec.Name, args.WorkloadPath, args.Bucket, args.Region, args.Throughput}

	switch spec.Runner {
	case RunnerNativeBinary:
		return CommandConfig{
			Binary: l.path("install", "bin", "s3-c"),
			Args:   positional,
		}, nil
	case RunnerPythonScript:
		return CommandConfig{
			Binary: l.path("install", "python-venv", "bin", "python3"),
			Args:   append([]string{l.path("source", "runners", "s3-python", "main.py")}, positional...),
		}, nil
	case RunnerJavaJar:
		return CommandConfig{
			Binary: "java",
			Args: append([]string{
				"-jar", l.path("source", "runners", "s3-java", "target", "s3-benchrunner-java-1.0-SNAPSHOT.jar"),
			}, positional...),
		}, nil
	case RunnerRustBinary:
		return CommandConfig{
			Binary: l.path("source", "runners", "s3-rust", "target", "release", "s3-benchrunner-rust"),
			Args:   positional,
			Env:    []string{"AWS_REGION=" + args.Region},
		}, nil
	}
	return CommandConfig{}, fmt.Errorf("client %s: unsupported runner kind %s", spec.Name, spec.Runner)
}
