package cli

// This file contains the per-client orchestration: checkout, clear,
// rebuild and execute, strictly in that order.

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/s3bench/s3compare/cli/proc"
	"github.com/s3bench/s3compare/clients"
	"github.com/s3bench/s3compare/model"
	"github.com/s3bench/s3compare/runreport"
)

// Orchestrator drives one client at a time through the benchmark steps.
type Orchestrator struct {
	logger  zerolog.Logger
	runner  proc.Runner
	layout  clients.Layout
	verbose bool
	// diag receives streamed subprocess output and failure diagnostics
	diag io.Writer
}

// ClientRun is one side of the comparison.
type ClientRun struct {
	Client model.ClientDescriptor
	Spec   clients.Spec
}

// Run checks out, rebuilds and executes the client, then extracts its metrics.
// The first failing step aborts the run; a failed clear only warns.
func (o *Orchestrator) Run(ctx context.Context, run ClientRun, args clients.RunnerArgs, workload *workloadArtifact) (model.MetricSet, error) {
	if err := o.checkout(ctx, run.Client); err != nil {
		return model.MetricSet{}, err
	}

	o.clear(ctx, run.Client.Name, run.Spec.Family)

	if err := o.rebuild(ctx, run.Client.Name, run.Spec.Family); err != nil {
		return model.MetricSet{}, err
	}

	if err := workload.Verify(); err != nil {
		return model.MetricSet{}, err
	}

	output, err := o.execute(ctx, run.Spec, args)
	if err != nil {
		return model.MetricSet{}, err
	}

	metrics, err := runreport.ParseString(output)
	if err != nil {
		return model.MetricSet{}, fmt.Errorf("failed to parse output of %s: %w", run.Client.Name, err)
	}

	o.logger.Debug().
		Str("client", run.Client.Label()).
		Int("runs", len(metrics.Runs)).
		Bool("throughput", metrics.Throughput != nil).
		Bool("duration", metrics.Duration != nil).
		Bool("peak_rss", metrics.PeakRSSMiB != nil).
		Msg("Extracted metrics")
	return metrics, nil
}

// stepResult is the captured output of a finished step.
type stepResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// runStep runs cmd with its output captured, and also streamed to diag when
// verbose. A command that cannot be started is reported as a ProcessError.
func (o *Orchestrator) runStep(ctx context.Context, step, client string, cmd proc.Command) (stepResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if o.verbose {
		cmd.Stdout = io.MultiWriter(o.diag, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(o.diag, &stderrBuf)
	}

	o.logger.Info().Str("step", step).Str("client", client).Str("command", cmd.String()).Msg("Running")

	code, err := o.runner.Run(ctx, cmd)
	res := stepResult{stdout: stdoutBuf.String(), stderr: stderrBuf.String(), exitCode: code}
	if err != nil {
		return res, &model.ProcessError{Step: step, Client: client, Command: cmd.String(), ExitCode: code, Err: err}
	}
	return res, nil
}

// mustSucceed turns a non-zero exit into a ProcessError, echoing the captured
// output first so the failure can be diagnosed without re-running.
func (o *Orchestrator) mustSucceed(step, client string, cmd proc.Command, res stepResult) error {
	if res.exitCode == 0 {
		return nil
	}
	o.echoFailure(step, client, res)
	return &model.ProcessError{Step: step, Client: client, Command: cmd.String(), ExitCode: res.exitCode}
}

func (o *Orchestrator) echoFailure(step, client string, res stepResult) {
	subject := step
	if client != "" {
		subject += " for " + client
	}
	fmt.Fprintf(o.diag, "Error running %s (exit code %d):\n", subject, res.exitCode)
	if res.stdout != "" {
		fmt.Fprintln(o.diag, res.stdout)
	}
	if res.stderr != "" {
		fmt.Fprintln(o.diag, res.stderr)
	}
}
