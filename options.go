package idlecore

import "fmt"

// coreOptions holds configuration resolved at Core construction.
type coreOptions struct {
	roundsUntilSleepy uint32
	roundsUntilAsleep uint32
	yieldHint         bool
	logger            Logger
	metricsEnabled    bool
}

// defaultRoundsUntilSleepy and defaultRoundsUntilAsleep are the canonical
// thresholds from spec.md §3 and the literal scenarios of spec.md §8.
const (
	defaultRoundsUntilSleepy uint32 = 32
	defaultRoundsUntilAsleep uint32 = 64
)

// Option configures a Core instance.
type Option interface {
	apply(*coreOptions) error
}

type coreOptionFunc func(*coreOptions) error

func (f coreOptionFunc) apply(o *coreOptions) error { return f(o) }

// WithThresholds overrides the default ROUNDS_UNTIL_SLEEPY and
// ROUNDS_UNTIL_ASLEEP constants from spec.md §3. sleepy must be strictly
// less than asleep, matching the invariant spec.md places on the two
// constants.
func WithThresholds(roundsUntilSleepy, roundsUntilAsleep uint32) Option {
	return coreOptionFunc(func(o *coreOptions) error {
		if roundsUntilSleepy >= roundsUntilAsleep {
			return fmt.Errorf("idlecore: roundsUntilSleepy (%d) must be < roundsUntilAsleep (%d)", roundsUntilSleepy, roundsUntilAsleep)
		}
		o.roundsUntilSleepy = roundsUntilSleepy
		o.roundsUntilAsleep = roundsUntilAsleep
		return nil
	})
}

// WithYieldHint controls whether NoWorkFound issues a runtime.Gosched()
// hint on the paths spec.md's state table marks "Yield the thread".
// spec.md §9 notes this is a tunable outside the correctness envelope;
// default is enabled.
func WithYieldHint(enabled bool) Option {
	return coreOptionFunc(func(o *coreOptions) error {
		o.yieldHint = enabled
		return nil
	})
}

// WithLogger attaches a structured Logger for diagnostic events (become
// sleepy, fall asleep, wake, tickle). A nil logger is a no-op, the same
// as the default NoOpLogger.
func WithLogger(logger Logger) Option {
	return coreOptionFunc(func(o *coreOptions) error {
		if logger == nil {
			logger = NewNoOpLogger()
		}
		o.logger = logger
		return nil
	})
}

// WithMetrics enables the low-overhead Metrics counters on the Core,
// accessible via Core.Metrics.
func WithMetrics(enabled bool) Option {
	return coreOptionFunc(func(o *coreOptions) error {
		o.metricsEnabled = enabled
		return nil
	})
}

// resolveOptions applies opts over the documented defaults.
func resolveOptions(opts []Option) (*coreOptions, error) {
	cfg := &coreOptions{
		roundsUntilSleepy: defaultRoundsUntilSleepy,
		roundsUntilAsleep: defaultRoundsUntilAsleep,
		yieldHint:         true,
		logger:            NewNoOpLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
