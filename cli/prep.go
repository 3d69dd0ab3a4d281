package cli

// This file contains the one-time preparation of the files a workload needs,
// both in the bucket and in the local files directory.

import (
	"context"
	"fmt"
	"os"

	"github.com/s3bench/s3compare/cli/proc"
)

func (o *Orchestrator) prepare(ctx context.Context, bucket, region, workloadPath string) error {
	filesDir := o.layout.FilesDir()
	if err := os.MkdirAll(filesDir, 0755); err != nil {
		return fmt.Errorf("failed to create files directory: %w", err)
	}

	o.logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("files_dir", filesDir).
		Msg("Preparing workload files")

	cmd := proc.Command{
		Name: "python3",
		Args: []string{
			o.layout.PrepScript(),
			"--bucket", bucket,
			"--region", region,
			"--files-dir", filesDir,
			"--workloads", workloadPath,
		},
		Dir: o.layout.Root,
	}
	res, err := o.runStep(ctx, "prep", "", cmd)
	if err != nil {
		return err
	}
	return o.mustSucceed("prep", "", cmd, res)
}
