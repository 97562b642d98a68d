package log

// Logger is the structured logging interface used throughout the SDK.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs detailed information useful during development.
	// keysAndValues are treated as alternating key-value pairs.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine events and state changes.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected situations the SDK can recover from.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures that prevent an operation from completing.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure and may terminate the program.
	Fatal(msg string, keysAndValues ...any)

	// WithKV returns a logger that attaches the key-value pair to all
	// future log entries.
	WithKV(key string, value any) Logger
	// GetAllKV returns the persistent key-value pairs of this logger.
	GetAllKV() []any
	// WithName returns a logger named after a component or subsystem.
	// Names nest with dots: WithName("a") then WithName("b") yields "a.b".
	WithName(name string) Logger
	// Name returns the logger's full name.
	Name() string
	// AddCallerSkip returns a logger that skips extra stack frames when
	// resolving the caller. Implementations that do not support caller
	// reporting return themselves.
	AddCallerSkip(skip int) Logger
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// SpanEventRecorder records log events onto a distributed-tracing span.
type SpanEventRecorder interface {
	// TraceID returns the trace ID of the underlying span.
	TraceID() string
	// SpanID returns the span ID of the underlying span.
	SpanID() string
	// RecordEvent records an event with the given attributes on the span.
	RecordEvent(name string, keysAndValues ...any)
	// RecordError records an error event and marks the span as failed.
	RecordError(name string, keysAndValues ...any)
}
