package log

var _ Logger = NoopLogger{}

// NoopLogger discards everything. It is the logger returned by FromContext
// when none was installed, so library code can log unconditionally.
type NoopLogger struct{}

func NewNoopLogger() Logger { return NoopLogger{} }

func (NoopLogger) Debug(msg string, keysAndValues ...any) {}
func (NoopLogger) Info(msg string, keysAndValues ...any)  {}
func (NoopLogger) Warn(msg string, keysAndValues ...any)  {}
func (NoopLogger) Error(msg string, keysAndValues ...any) {}
func (NoopLogger) Fatal(msg string, keysAndValues ...any) {}

func (n NoopLogger) WithKV(key string, value any) Logger { return n }
func (NoopLogger) GetAllKV() []any                       { return nil }
func (n NoopLogger) WithName(name string) Logger         { return n }
func (NoopLogger) Name() string                          { return "" }
func (n NoopLogger) AddCallerSkip(skip int) Logger       { return n }
