// Package runner executes configured steps, timing each one under a mark.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hoaproject/Bench/internal/config"
	"github.com/hoaproject/Bench/internal/derrors"
	"github.com/hoaproject/Bench/internal/logger"
	"github.com/hoaproject/Bench/internal/trace"
	"github.com/hoaproject/Bench/pkg/bench"
)

// DefaultShell interprets step commands
const DefaultShell = "sh"

// Runner runs steps sequentially against a registry
type Runner struct {
	registry *bench.Registry
	log      *logger.Logger
	shell    string
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures a Runner
type Option func(*Runner)

// WithShell replaces the shell used to run commands
func WithShell(shell string) Option {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithOutput redirects the output of the commands
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a runner. A nil logger discards everything.
func New(registry *bench.Registry, log *logger.Logger, opts ...Option) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	r := &Runner{
		registry: registry,
		log:      log,
		shell:    DefaultShell,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the steps in order and stops at the first failure.
// A step whose mark is paused resumes it, so the time of several steps
// sharing a name adds up.
func (r *Runner) Run(ctx context.Context, steps []config.Step) error {
	ctx, end := trace.Task(ctx, "bench run")
	defer end()

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return derrors.NewExecutionError(step.Name, fmt.Sprintf("step '%s' not run", step.Name), err)
		}
		if err := r.runStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step config.Step) error {
	if step.Name == bench.GlobalID {
		return reservedName()
	}

	mark := r.registry.Get(step.Name)
	if err := mark.Start(); err != nil {
		return derrors.NewExecutionError(step.Name, "cannot start the step mark", err)
	}

	r.log.Info().Str("step", step.Name).Str("run", step.Run).Msg("Running step")

	cmd := exec.CommandContext(ctx, r.shell, "-c", step.Run)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	var err error
	trace.WithRegion(ctx, step.Name, func() {
		err = cmd.Run()
	})

	if err != nil {
		mark.TryStop()
		r.log.Error().Mark(mark).Err(err).Msg("Step failed")
		return derrors.NewExecutionError(step.Name, fmt.Sprintf("step '%s' failed", step.Name), err)
	}

	if step.PauseAfter {
		err = mark.Pause()
	} else {
		err = mark.Stop()
	}
	if err != nil {
		return derrors.NewExecutionError(step.Name, "cannot stop the step mark", err)
	}

	trace.Log(ctx, "step", step.Name+" done")
	r.log.Debug().Mark(mark).Msg("Step done")
	return nil
}

// ParseStep parses a "name=command" argument
func ParseStep(arg string) (config.Step, error) {
	name, run, ok := strings.Cut(arg, "=")
	name, run = strings.TrimSpace(name), strings.TrimSpace(run)
	if !ok || name == "" || run == "" {
		return config.Step{}, derrors.NewValidationError("step",
			fmt.Sprintf("invalid step '%s', expected name=command", arg), nil)
	}
	if name == bench.GlobalID {
		return config.Step{}, reservedName()
	}
	return config.Step{Name: name, Run: run}, nil
}

func reservedName() error {
	return derrors.NewValidationError("step",
		fmt.Sprintf("step name '%s' is a reserved mark name", bench.GlobalID), nil)
}

// ParseSteps parses every argument with ParseStep
func ParseSteps(args []string) ([]config.Step, error) {
	steps := make([]config.Step, 0, len(args))
	for _, arg := range args {
		step, err := ParseStep(arg)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}
