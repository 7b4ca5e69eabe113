package idlecore

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Level is the severity of a diagnostic log entry emitted by idlecore.
// idlecore logs only at Debug (state transitions, for bug diagnosis);
// LevelWarn is defined for Logger implementations but no idlecore code
// path emits it. It never logs at Info or above, since a throttle-down coordination core
// producing steady-state log volume would defeat its own "cheap in the
// common case" design goal.
type Level int

const (
	LevelDebug Level = iota
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// Logger is the structured logging interface idlecore emits diagnostic
// events through. It is decoupled from any concrete backend so callers
// can plug in their own (zerolog, logrus, slog, or the stumpy-backed
// logiface.Logger NewStumpyLogger wraps).
type Logger interface {
	// Log emits msg at level with the given fields. Implementations
	// must not retain fields beyond the call.
	Log(level Level, msg string, fields map[string]any)
	// IsEnabled lets callers skip building fields when the level is
	// disabled, keeping the hot path allocation-free when logging is
	// off.
	IsEnabled(level Level) bool
}

// NoOpLogger discards everything; it is the default Logger when none is
// configured via WithLogger.
type NoOpLogger struct{}

// NewNoOpLogger returns a Logger that discards all entries.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (NoOpLogger) Log(Level, string, map[string]any) {}
func (NoOpLogger) IsEnabled(Level) bool              { return false }

// StumpyLogger adapts a logiface.Logger[*stumpy.Event] — the JSON
// structured-event backend from the same dependency family idlecore's
// teacher (go-eventloop) depends on directly — to the Logger interface.
type StumpyLogger struct {
	logger *logiface.Logger[*stumpy.Event]
}

// NewStumpyLogger builds a StumpyLogger writing JSON lines via stumpy,
// at the given minimum logiface.Level (e.g. logiface.LevelDebug to see
// everything idlecore emits).
func NewStumpyLogger(minLevel logiface.Level, opts ...stumpy.Option) *StumpyLogger {
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(opts...),
		logiface.WithLevel[*stumpy.Event](minLevel),
	)
	return &StumpyLogger{logger: logger}
}

func (s *StumpyLogger) IsEnabled(level Level) bool {
	return s.logger.Level() >= toLogifaceLevel(level)
}

func (s *StumpyLogger) Log(level Level, msg string, fields map[string]any) {
	b := s.logger.Build(toLogifaceLevel(level))
	if !b.Enabled() {
		b.Release()
		return
	}
	for k, v := range fields {
		b = b.Any(k, v)
	}
	b.Log(msg)
}

func toLogifaceLevel(level Level) logiface.Level {
	switch level {
	case LevelWarn:
		return logiface.LevelWarning
	default:
		return logiface.LevelDebug
	}
}
