package indirectvec

// FailurePolicy selects how a vector reports a failed check.
type FailurePolicy uint8

const (
	// PolicyReturn returns the structured error to the caller.
	PolicyReturn FailurePolicy = iota
	// PolicyPanic panics with the structured error. Use it where a failed
	// capacity or bounds check is a programming error that must abort.
	PolicyPanic
)

func (p FailurePolicy) String() string {
	switch p {
	case PolicyReturn:
		return "return"
	case PolicyPanic:
		return "panic"
	default:
		return "unknown"
	}
}

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	policy           FailurePolicy
}

// Option configures vector construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example:
//
//	metrics := &indirectvec.BasicMetricsCollector{}
//	v, _ := indirectvec.New[int](64, indirectvec.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for rejected operations and sorts.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithFailurePolicy configures how failed checks are reported.
// The policy is fixed for the lifetime of the vector.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		policy:           PolicyReturn,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
