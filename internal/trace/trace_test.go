package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv(EnvVar, "")

	cleanup := Init()
	defer cleanup()

	assert.False(t, IsEnabled())

	ctx, end := Task(context.Background(), "run")
	defer end()
	assert.NotNil(t, ctx)

	called := false
	WithRegion(ctx, "step", func() { called = true })
	assert.True(t, called)

	Log(ctx, "step", "ignored")
}
