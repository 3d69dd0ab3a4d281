package cli

// This file contains the comparison pipeline: payload, workload artifact,
// file preparation, both client runs and the final report.

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/s3bench/s3compare/clients"
	"github.com/s3bench/s3compare/model"
	"github.com/s3bench/s3compare/report"
	"github.com/s3bench/s3compare/runreport"
	"github.com/s3bench/s3compare/workload"
)

type compareConfig struct {
	clients     [2]model.ClientDescriptor
	bucket      string
	region      string
	throughput  string
	verbose     bool
	payload     []string
	root        string
	keep        bool
	derive      bool
	metricsFile string
}

func (a *App) parseCompareConfig(ctx *cli.Context) (compareConfig, error) {
	verbose, err := parseVerbose(ctx.String("verbose"))
	if err != nil {
		return compareConfig{}, err
	}

	cfg := compareConfig{
		clients: [2]model.ClientDescriptor{
			{
				Name:     ctx.String("client1"),
				Branch:   ctx.String("client1-branch"),
				RepoPath: ctx.String("client1-repo"),
			},
			{
				Name:     ctx.String("client2"),
				Branch:   ctx.String("client2-branch"),
				RepoPath: ctx.String("client2-repo"),
			},
		},
		bucket:      ctx.String("bucket"),
		region:      ctx.String("region"),
		throughput:  ctx.String("throughput"),
		verbose:     verbose,
		root:        ctx.String("root"),
		keep:        ctx.Bool("keep-workload"),
		derive:      ctx.Bool("derive-aggregates"),
		metricsFile: ctx.String("metrics-file"),
	}
	cfg.payload = append(cfg.payload, ctx.StringSlice("payload")...)
	cfg.payload = append(cfg.payload, ctx.Args().Slice()...)
	return cfg, nil
}

func (a *App) compare(ctx *cli.Context) error {
	cfg, err := a.parseCompareConfig(ctx)
	if err != nil {
		return err
	}

	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	var runs [2]ClientRun
	for i, c := range cfg.clients {
		spec, err := clients.Lookup(c.Name)
		if err != nil {
			return err
		}
		runs[i] = ClientRun{Client: c, Spec: spec}
	}
	if err := validateBucket(cfg.bucket, cfg.region); err != nil {
		return err
	}
	if err := validateThroughput(cfg.throughput); err != nil {
		return err
	}

	spec, err := workload.ParsePayload(a.logger, cfg.payload)
	if err != nil {
		return err
	}

	artifact, err := writeWorkloadArtifact(spec)
	if err != nil {
		return err
	}
	if cfg.keep {
		a.logger.Warn().Str("path", artifact.Path).Msg("Keeping workload file")
	} else {
		defer func() {
			if rmErr := artifact.Remove(); rmErr != nil {
				a.logger.Warn().Err(rmErr).Str("path", artifact.Path).Msg("Failed to remove workload file")
			}
		}()
	}

	a.logger.Info().
		Str("path", artifact.Path).
		Str("fingerprint", artifact.Fingerprint()).
		Int("tasks", len(spec.Tasks)).
		Msg("Workload written")

	layout, err := clients.NewLayout(cfg.root)
	if err != nil {
		return err
	}
	orch := &Orchestrator{
		logger:  a.logger,
		runner:  a.runner,
		layout:  layout,
		verbose: cfg.verbose,
		diag:    a.stderr,
	}

	if err := orch.prepare(ctx.Context, cfg.bucket, cfg.region, artifact.Path); err != nil {
		return err
	}

	args := clients.RunnerArgs{
		WorkloadPath: artifact.Path,
		Bucket:       cfg.bucket,
		Region:       cfg.region,
		Throughput:   cfg.throughput,
	}

	var columns [2]report.Column
	for i, run := range runs {
		metrics, err := orch.Run(ctx.Context, run, args, artifact)
		if err != nil {
			return err
		}
		if cfg.derive {
			metrics = runreport.DeriveAggregates(metrics)
		}
		columns[i] = report.Column{Client: run.Client, Metrics: metrics}
	}

	if err := report.Render(a.stdout, columns[0], columns[1]); err != nil {
		return fmt.Errorf("failed to render comparison: %w", err)
	}

	if cfg.metricsFile != "" {
		if err := report.WriteTextfile(cfg.metricsFile, columns[0], columns[1]); err != nil {
			return err
		}
		a.logger.Info().Str("path", cfg.metricsFile).Msg("Metrics written")
	}
	return nil
}
