package cli

// This file contains Git integration for checking out the branch under
// test in a client's source repository.

import (
	"context"
	"strings"

	"github.com/s3bench/s3compare/cli/proc"
	"github.com/s3bench/s3compare/model"
)

func (o *Orchestrator) checkout(ctx context.Context, client model.ClientDescriptor) error {
	repoDir := o.layout.RepoDir(client.RepoPath)

	o.logger.Info().
		Str("client", client.Name).
		Str("branch", client.Branch).
		Str("repo", repoDir).
		Msg("Checking out branch")

	fetch := proc.Command{Name: "git", Args: []string{"fetch", "origin"}, Dir: repoDir}
	res, err := o.runStep(ctx, "git fetch", client.Name, fetch)
	if err != nil {
		return err
	}
	if err := o.mustSucceed("git fetch", client.Name, fetch, res); err != nil {
		return err
	}

	checkout := proc.Command{Name: "git", Args: []string{"checkout", client.Branch}, Dir: repoDir}
	res, err = o.runStep(ctx, "git checkout", client.Name, checkout)
	if err != nil {
		return err
	}
	if err := o.mustSucceed("git checkout", client.Name, checkout, res); err != nil {
		return err
	}

	// The resolved commit is informational only
	if commit, err := o.headCommit(ctx, repoDir); err == nil {
		o.logger.Info().
			Str("client", client.Name).
			Str("branch", client.Branch).
			Str("commit", commit).
			Msg("Branch checked out")
	} else {
		o.logger.Debug().Err(err).Str("repo", repoDir).Msg("Failed to resolve HEAD")
	}
	return nil
}

func (o *Orchestrator) headCommit(ctx context.Context, repoDir string) (string, error) {
	var stdout strings.Builder
	cmd := proc.Command{Name: "git", Args: []string{"rev-parse", "HEAD"}, Dir: repoDir, Stdout: &stdout}
	code, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", &model.ProcessError{Step: "git rev-parse", Command: cmd.String(), ExitCode: code}
	}
	return strings.TrimSpace(stdout.String()), nil
}
