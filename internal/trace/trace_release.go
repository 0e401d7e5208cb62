//go:build !dev

// Package trace wraps runtime/trace for development builds.
// Release builds compile to no-ops.
package trace

import "context"

// EnvVar names the file the execution trace is written to
const EnvVar = "BENCH_TRACE"

// Init is a no-op.
func Init() func() {
	return func() {}
}

// Task returns ctx unchanged.
func Task(ctx context.Context, _ string) (context.Context, func()) {
	return ctx, func() {}
}

// WithRegion calls f.
func WithRegion(_ context.Context, _ string, f func()) {
	f()
}

// Log is a no-op.
func Log(_ context.Context, _, _ string) {}

// IsEnabled always returns false.
func IsEnabled() bool {
	return false
}
