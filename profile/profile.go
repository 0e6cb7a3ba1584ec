package profile

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// settings is the profiler configuration assembled from [Option] values.
type settings struct {
	mode  string
	path  string
	quiet bool
}

// Option configures a profiling session started with [Start].
type Option func(settings) settings

// WithMode selects the profile to record; see [Modes]. An empty or
// unsupported mode disables profiling.
func WithMode(mode string) Option {
	return func(s settings) settings {
		s.mode = mode

		return s
	}
}

// WithPath sets the directory receiving the profile output.
func WithPath(path string) Option {
	return func(s settings) settings {
		s.path = path

		return s
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(s settings) settings {
		s.quiet = quiet

		return s
	}
}

// Start begins a profiling session and returns its [Stopper]. Without the
// pprof build tag, or without a supported mode, the returned Stopper does
// nothing. Stop is always safe to call.
func Start(opts ...Option) Stopper {
	var s settings

	for _, opt := range opts {
		s = opt(s)
	}

	if s.mode == "" {
		return ignore{}
	}

	return start(s)
}

type ignore struct{}

func (ignore) Stop() {}
