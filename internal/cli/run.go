package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hoaproject/Bench/internal/config"
	"github.com/hoaproject/Bench/internal/derrors"
	"github.com/hoaproject/Bench/internal/filter"
	"github.com/hoaproject/Bench/internal/logger"
	"github.com/hoaproject/Bench/internal/metrics"
	"github.com/hoaproject/Bench/internal/report"
	"github.com/hoaproject/Bench/internal/runner"
	"github.com/hoaproject/Bench/pkg/bench"
)

// RunParams contains parameters for the Run command
type RunParams struct {
	ConfigPath string
	// LogLevel overrides the configured level when set
	LogLevel string
	// Width and Format override the configuration when set
	Width      int
	Format     string
	NoFilter   bool
	MetricsOut string
	// Args are "name=command" steps replacing the configured ones
	Args []string
	// Out receives the report, os.Stdout when nil
	Out io.Writer
	// CommandOut receives the output of the steps, os.Stderr when nil
	CommandOut io.Writer
}

// Run times every step under its own mark and writes the report
func Run(ctx context.Context, params RunParams) error {
	cfg, configPath, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if params.LogLevel != "" {
		level = params.LogLevel
	}
	log := logger.New(level, os.Stderr)
	if configPath != "" {
		log.Debug().Str("path", configPath).Msg("Loaded configuration")
	}

	if params.Width != 0 {
		cfg.Width = params.Width
	}
	if params.Format != "" {
		cfg.Format = params.Format
	}

	if result := config.Validate(cfg); !result.Valid {
		first := result.Errors[0]
		return derrors.NewValidationError(first.Field, first.Message, nil)
	}

	steps := cfg.Steps
	if len(params.Args) > 0 {
		if steps, err = runner.ParseSteps(params.Args); err != nil {
			return err
		}
	}
	if len(steps) == 0 {
		return fmt.Errorf("no steps to run: add steps to the config or pass name=command arguments")
	}

	filters, err := filter.ParseAll(cfg.Filters)
	if err != nil {
		return derrors.NewConfigurationError(configPath, "invalid filters", err)
	}

	out := params.Out
	if out == nil {
		out = os.Stdout
	}
	commandOut := params.CommandOut
	if commandOut == nil {
		commandOut = os.Stderr
	}

	registry := bench.NewRegistry(bench.WithLogger(log))
	ctx = bench.WithRegistry(ctx, registry)

	runErr := runner.New(registry, log, runner.WithOutput(commandOut, commandOut)).Run(ctx, steps)
	if runErr != nil {
		log.Warn().Err(runErr).Msg("Run interrupted, reporting the completed steps")
	}

	reportErr := writeReport(ctx, out, cfg, filters, params)
	return errors.Join(runErr, reportErr)
}

func writeReport(ctx context.Context, out io.Writer, cfg *config.Config, filters []bench.Filter, params RunParams) error {
	stats := bench.NewStatistics(bench.FromContext(ctx), filters...)
	applyFilters := !params.NoFilter

	err := report.Write(out, stats.Snapshot(applyFilters), report.Options{
		Format:   report.Format(cfg.Format),
		Width:    cfg.Width,
		Template: cfg.Template,
	})
	if err != nil {
		return err
	}

	if params.MetricsOut != "" {
		if err := metrics.WriteTextfile(params.MetricsOut, stats, applyFilters); err != nil {
			return fmt.Errorf("failed to write metrics to %s: %w", params.MetricsOut, err)
		}
	}
	return nil
}
