package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoaproject/Bench/internal/config"
	"github.com/hoaproject/Bench/internal/derrors"
	"github.com/hoaproject/Bench/internal/logger"
	"github.com/hoaproject/Bench/pkg/bench"
)

func newRunner(t *testing.T) (*Runner, *bench.Registry, *bytes.Buffer) {
	t.Helper()
	registry := bench.NewRegistry()
	out := &bytes.Buffer{}
	return New(registry, logger.Nop(), WithOutput(out, out)), registry, out
}

func TestRun_StopsEachMark(t *testing.T) {
	r, registry, out := newRunner(t)

	err := r.Run(context.Background(), []config.Step{
		{Name: "first", Run: "echo one"},
		{Name: "second", Run: "echo two"},
	})
	require.NoError(t, err)

	assert.Equal(t, "one\ntwo\n", out.String())
	assert.Equal(t, []string{bench.GlobalID, "first", "second"}, registry.IDs())
	for _, id := range []string{"first", "second"} {
		assert.Equal(t, bench.Idle, registry.Get(id).State(), id)
	}
}

func TestRun_PauseAfterResumes(t *testing.T) {
	r, registry, _ := newRunner(t)

	require.NoError(t, r.Run(context.Background(), []config.Step{
		{Name: "build", Run: "true", PauseAfter: true},
	}))
	assert.Equal(t, bench.Paused, registry.Get("build").State())

	require.NoError(t, r.Run(context.Background(), []config.Step{
		{Name: "build", Run: "true"},
	}))
	assert.Equal(t, bench.Idle, registry.Get("build").State())
	assert.Equal(t, 2, registry.Count())
}

func TestRun_Failure(t *testing.T) {
	r, registry, _ := newRunner(t)

	err := r.Run(context.Background(), []config.Step{
		{Name: "broken", Run: "exit 3"},
		{Name: "never", Run: "true"},
	})

	var execErr *derrors.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "broken", execErr.Step)
	assert.Equal(t, "EXEC_ERROR", execErr.Code())
	assert.Equal(t, bench.Idle, registry.Get("broken").State())
	assert.False(t, registry.Exists("never"))
}

func TestRun_Cancelled(t *testing.T) {
	r, registry, _ := newRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, []config.Step{{Name: "skipped", Run: "true"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, registry.Exists("skipped"))
}

func TestRun_MarkAlreadyRunning(t *testing.T) {
	r, registry, _ := newRunner(t)
	require.NoError(t, registry.Get("busy").Start())

	err := r.Run(context.Background(), []config.Step{{Name: "busy", Run: "true"}})

	var started *derrors.AlreadyStartedError
	assert.True(t, errors.As(err, &started))
}

func TestRun_ReservedName(t *testing.T) {
	r, registry, _ := newRunner(t)

	err := r.Run(context.Background(), []config.Step{{Name: bench.GlobalID, Run: "true"}})

	var validation *derrors.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Contains(t, err.Error(), "reserved mark name")
	assert.Equal(t, 0, registry.Count())
}

func TestRun_Logs(t *testing.T) {
	buf := &bytes.Buffer{}
	registry := bench.NewRegistry()
	r := New(registry, logger.New("debug", buf), WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	require.NoError(t, r.Run(context.Background(), []config.Step{{Name: "logged", Run: "true"}}))

	assert.Contains(t, buf.String(), "Running step")
	assert.Contains(t, buf.String(), "mark=logged")
}

func TestNew_Defaults(t *testing.T) {
	r := New(bench.NewRegistry(), nil)
	assert.Equal(t, DefaultShell, r.shell)
	assert.NotNil(t, r.log)
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		arg     string
		want    config.Step
		wantErr bool
	}{
		{arg: "build=go build ./...", want: config.Step{Name: "build", Run: "go build ./..."}},
		{arg: "env=FOO=bar env", want: config.Step{Name: "env", Run: "FOO=bar env"}},
		{arg: " spaced = true ", want: config.Step{Name: "spaced", Run: "true"}},
		{arg: "missing", wantErr: true},
		{arg: "__global__=true", wantErr: true},
		{arg: "=true", wantErr: true},
		{arg: "empty=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseStep(tt.arg)
			if tt.wantErr {
				var validation *derrors.ValidationError
				assert.True(t, errors.As(err, &validation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps([]string{"a=true", "b=false"})
	require.NoError(t, err)
	assert.Len(t, steps, 2)

	_, err = ParseSteps([]string{"a=true", "b"})
	assert.Error(t, err)
}
