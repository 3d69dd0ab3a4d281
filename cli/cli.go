package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/s3bench/s3compare/cli/proc"
	"github.com/s3bench/s3compare/clients"
)

const AppName = "s3compare"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
	runner proc.Runner
	stdout io.Writer
	stderr io.Writer
}

func New() *App {
	return newApp(nil, os.Stdout, os.Stderr)
}

// newApp wires an App to the given process runner and output streams. A nil
// runner spawns real processes.
func newApp(runner proc.Runner, stdout, stderr io.Writer) *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        stderr,
		TimeFormat: time.RFC3339Nano,
	}).With().Timestamp().Logger()

	if runner == nil {
		runner = proc.NewExec(logger)
	}

	app := &App{
		logger: logger,
		runner: runner,
		stdout: stdout,
		stderr: stderr,
		cli: &cli.App{
			Name:      AppName,
			Usage:     "Compare the performance of two S3 client branches on the same workload",
			Writer:    stdout,
			ErrWriter: stderr,
			// errors are reported by Main
			ExitErrHandler: func(*cli.Context, error) {},
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "root",
					Usage:   "Root of the benchmarks checkout (scripts/, install/, source/, files/)",
					Value:   ".",
					EnvVars: []string{"S3COMPARE_ROOT"},
				},
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "compare",
		Usage:     "Build and run two clients against the same workload and print a comparison",
		ArgsUsage: "[PAYLOAD...]",
		Action:    app.compare,
		Description: `Parses the payload into a single workload, prepares its files once, then for
each client checks out the branch, rebuilds, runs the benchmark runner and
extracts its metrics. Clients run one after another, never concurrently.

Payload:
  --payload upload-10MiB-3x download-1GiB-1x-ram    workload names
  --payload workloads.json                           a single JSON file`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "client1",
				Usage:    "First client (" + joinNames() + ")",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client1-branch",
				Usage:    "Git ref to check out for the first client",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client1-repo",
				Usage:    "Source checkout of the first client, relative to --root",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client2",
				Usage:    "Second client",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client2-branch",
				Usage:    "Git ref to check out for the second client",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client2-repo",
				Usage:    "Source checkout of the second client, relative to --root",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "bucket",
				Usage:    "S3 bucket name or access point ARN",
				Required: true,
				EnvVars:  []string{"S3COMPARE_BUCKET"},
			},
			&cli.StringFlag{
				Name:     "region",
				Usage:    "AWS region of the bucket",
				Required: true,
				EnvVars:  []string{"S3COMPARE_REGION"},
			},
			&cli.StringFlag{
				Name:     "throughput",
				Usage:    "Target throughput in Gb/s, passed to the runners",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "verbose",
				Usage:    "Show progress and subprocess output (true/false)",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "payload",
				Usage:    "Workload names, or a single .json file; further names may follow as arguments",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "keep-workload",
				Usage: "Keep the generated workload file after the comparison",
			},
			&cli.BoolFlag{
				Name:  "derive-aggregates",
				Usage: "Compute missing aggregate metrics from the per-run lines",
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Also write the compared metrics to this Prometheus textfile",
				EnvVars: []string{"S3COMPARE_METRICS_FILE"},
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:  "workload",
		Usage: "Build run workloads from compact descriptions",
		Subcommands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "Build workloads/src/*.json into workloads/run/*.json",
				ArgsUsage: "[SRC_FILE...]",
				Action:    app.workloadBuild,
			},
			{
				Name:   "generate",
				Usage:  "Generate a run workload from a workload name",
				Action: app.workloadGenerate,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "filename",
						Usage:    `Workload name like "upload-15MiB-1x.json"`,
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output file path",
						Required: true,
					},
				},
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(expandPayload(args))
}

// expandPayload rewrites "--payload a b c" into one --payload per token so
// that further flags may follow the payload list.
func expandPayload(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		if arg != "--payload" && arg != "-payload" {
			continue
		}
		if i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, "--payload", args[i])
		}
	}
	return out
}

// Main runs the application and returns the process exit code.
func (a *App) Main(args []string) int {
	if err := a.Run(args); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && len(commit) >= 8 {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

func joinNames() string {
	return strings.Join(clients.Names(), ", ")
}
