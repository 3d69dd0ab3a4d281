package proc

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Name: "git", Args: []string{"checkout", "feature/it's new"}}
	require.Equal(t, `git checkout 'feature/it'"'"'s new'`, cmd.String())
}

func TestExecRun(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code, err := NewExec(zerolog.Nop()).Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", `pwd; echo "$S3COMPARE_TEST"; echo oops >&2`},
		Dir:    dir,
		Env:    []string{"S3COMPARE_TEST=hello"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	gotDir, err := filepath.EvalSymlinks(lines[0])
	require.NoError(t, err)
	wantDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	require.Equal(t, wantDir, gotDir)
	require.Equal(t, "hello", lines[1])
	require.Equal(t, "oops\n", stderr.String())
}

func TestExecRunExitCode(t *testing.T) {
	requireShell(t)
	code, err := NewExec(zerolog.Nop()).Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, code)
}

func TestExecRunMissingBinary(t *testing.T) {
	_, err := NewExec(zerolog.Nop()).Run(context.Background(), Command{
		Name: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.Error(t, err)
}
