package bench

// Logger receives debug events from a registry.
// *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

type options struct {
	clock  Clock
	logger Logger
}

// Option configures a Mark or a Registry
type Option func(*options)

// WithClock replaces the time source
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used for registry events
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock, logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
