package cli

// This file contains the clear and rebuild steps, which delegate to the
// build scripts of the benchmarks checkout.

import (
	"context"

	"github.com/s3bench/s3compare/cli/proc"
	"github.com/s3bench/s3compare/clients"
)

// clear removes previous build output. Failure is only logged: the build
// may still succeed on top of stale output.
func (o *Orchestrator) clear(ctx context.Context, client string, family clients.BuildFamily) {
	cmd := proc.Command{
		Name: o.layout.ClearScript(),
		Args: []string{"--client", family.String()},
		Dir:  o.layout.Root,
	}
	res, err := o.runStep(ctx, "clear", client, cmd)
	if err == nil && res.exitCode == 0 {
		return
	}

	event := o.logger.Warn().
		Str("client", client).
		Str("target", family.String()).
		Int("exit_code", res.exitCode)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("Clear failed, continuing with rebuild")
}

func (o *Orchestrator) rebuild(ctx context.Context, client string, family clients.BuildFamily) error {
	o.logger.Info().
		Str("client", client).
		Str("target", family.String()).
		Msg("Rebuilding client")

	cmd := proc.Command{
		Name: o.layout.BuildScript(),
		Args: []string{"--client", family.String()},
		Dir:  o.layout.Root,
	}
	res, err := o.runStep(ctx, "build", client, cmd)
	if err != nil {
		return err
	}
	return o.mustSucceed("build", client, cmd, res)
}
