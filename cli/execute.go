package cli

// This file contains benchmark runner execution. Runners are started in the
// prepared files directory and their report is captured for extraction.

import (
	"context"

	"github.com/s3bench/s3compare/cli/proc"
	"github.com/s3bench/s3compare/clients"
)

func (o *Orchestrator) execute(ctx context.Context, spec clients.Spec, args clients.RunnerArgs) (string, error) {
	cfg, err := o.layout.RunnerCommand(spec, args)
	if err != nil {
		return "", err
	}

	o.logger.Info().
		Str("client", spec.Name).
		Str("runner", spec.Runner.String()).
		Str("workload", args.WorkloadPath).
		Msg("Running benchmark")

	cmd := proc.Command{
		Name: cfg.Binary,
		Args: cfg.Args,
		Dir:  o.layout.FilesDir(),
		Env:  cfg.Env,
	}
	res, err := o.runStep(ctx, "benchmark", spec.Name, cmd)
	if err != nil {
		return "", err
	}
	if err := o.mustSucceed("benchmark", spec.Name, cmd, res); err != nil {
		return "", err
	}

	o.logger.Info().Str("client", spec.Name).Msg("Benchmark completed successfully")
	return res.stdout, nil
}
