package cli

// This file contains the workload subcommands, which compile source
// workloads and workload names into run workload files.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/s3bench/s3compare/clients"
	"github.com/s3bench/s3compare/workload"
)

func (a *App) workloadBuild(ctx *cli.Context) error {
	layout, err := clients.NewLayout(ctx.String("root"))
	if err != nil {
		return err
	}
	srcDir := filepath.Join(layout.Root, "workloads", "src")
	runDir := filepath.Join(layout.Root, "workloads", "run")

	srcFiles := ctx.Args().Slice()
	if len(srcFiles) == 0 {
		matches, err := filepath.Glob(filepath.Join(srcDir, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list workload sources: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no workload sources found in %s", srcDir)
		}
		sort.Strings(matches)
		srcFiles = matches
	}

	for _, src := range srcFiles {
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("workload source not found: %s", src)
		}
	}

	for _, src := range srcFiles {
		spec, err := workload.BuildFile(src)
		if err != nil {
			return err
		}
		dst := filepath.Join(runDir, filepath.Base(src))
		if err := workload.WriteFile(dst, spec); err != nil {
			return err
		}
		a.logger.Info().
			Str("source", src).
			Str("output", dst).
			Int("tasks", len(spec.Tasks)).
			Msg("Built workload")
	}
	return nil
}

func (a *App) workloadGenerate(ctx *cli.Context) error {
	filename := ctx.String("filename")
	output := ctx.String("output")

	name, err := workload.ParseName(filename)
	if err != nil {
		return err
	}
	spec, err := workload.Compile(workload.Options{
		Action:      name.Action,
		FileSize:    name.FileSize,
		NumFiles:    name.NumFiles,
		FilesOnDisk: name.FilesOnDisk,
		Comment:     "Temporary workload generated from " + filename,
	})
	if err != nil {
		return err
	}
	if err := workload.WriteFile(output, spec); err != nil {
		return err
	}

	a.logger.Info().
		Str("name", filename).
		Str("output", output).
		Int("tasks", len(spec.Tasks)).
		Msg("Generated workload")
	return nil
}
