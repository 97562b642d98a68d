// Package log defines the structured logging interface used across the SDK
// together with a zap-backed implementation, a no-op fallback and helpers for
// carrying a logger through a context.Context. When the context holds an
// active OpenTelemetry span, log entries are mirrored onto the span as events.
//
// Typical setup:
//
//	lg := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelInfo})
//	ctx = log.SetContextLogger(ctx, lg.WithName("xaman"))
//
// Library code then retrieves it with log.FromContext(ctx) and never needs a
// nil check.
package log
