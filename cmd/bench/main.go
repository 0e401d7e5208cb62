// Package main is the entry point for the bench CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	benchcli "github.com/hoaproject/Bench/internal/cli"
	"github.com/hoaproject/Bench/internal/report"
	"github.com/hoaproject/Bench/internal/trace"
	"github.com/hoaproject/Bench/pkg/version"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "bench",
		Usage:   "Time commands under named marks and chart where the time goes",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the config",
				Sources: cli.EnvVars("BENCH_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run the configured steps, or name=command arguments, and print the report",
				ArgsUsage: "[name=command ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Config file (defaults to .bench.* in the current directory)",
					},
					&cli.IntFlag{
						Name:    "width",
						Aliases: []string{"w"},
						Usage:   "Report width in columns",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Report format (%v)", report.Formats()),
					},
					&cli.BoolFlag{
						Name:  "no-filter",
						Usage: "Report every mark, ignoring the configured filters",
					},
					&cli.StringFlag{
						Name:  "metrics-out",
						Usage: "Also write Prometheus metrics to this file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return benchcli.Run(ctx, benchcli.RunParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Width:      int(cmd.Int("width")),
						Format:     cmd.String("format"),
						NoFilter:   cmd.Bool("no-filter"),
						MetricsOut: cmd.String("metrics-out"),
						Args:       cmd.Args().Slice(),
						Out:        cmd.Root().Writer,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a bench configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return benchcli.Validate(cmd.Args().First())
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for bench configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" {
						outputPath = cmd.Args().First()
					}
					return benchcli.Schema(outputPath)
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample .bench.yml in the current folder",
				Action: func(_ context.Context, _ *cli.Command) error {
					return benchcli.Init("")
				},
			},
		},
	}
}

func main() {
	stopTrace := trace.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()
	stopTrace()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
