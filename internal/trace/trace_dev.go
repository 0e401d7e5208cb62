//go:build dev

// Package trace wraps runtime/trace for development builds.
//
// Usage:
//
//	BENCH_TRACE=trace.out bench run
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the file the execution trace is written to
const EnvVar = "BENCH_TRACE"

var (
	mu     sync.Mutex
	out    *os.File
	active bool
)

// Init starts tracing when BENCH_TRACE holds a path.
// The returned function flushes and closes the trace.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bench: cannot create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "bench: cannot start trace: %v\n", err)
		f.Close()
		return func() {}
	}

	out, active = f, true
	fmt.Fprintf(os.Stderr, "bench: tracing to %s\n", path)

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if active {
			trace.Stop()
			active = false
		}
		if out != nil {
			out.Close()
			out = nil
		}
	}
}

// Task opens a trace task; every step of a run belongs to it.
func Task(ctx context.Context, name string) (context.Context, func()) {
	if !active {
		return ctx, func() {}
	}
	ctx, task := trace.NewTask(ctx, name)
	return ctx, task.End
}

// WithRegion runs f inside a region named after a mark.
func WithRegion(ctx context.Context, mark string, f func()) {
	if !active {
		f()
		return
	}
	trace.WithRegion(ctx, mark, f)
}

// Log attaches a message to the current task.
func Log(ctx context.Context, category, message string) {
	if active {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled reports whether a trace is being recorded.
func IsEnabled() bool {
	return active
}
