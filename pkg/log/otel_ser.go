package log

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ SpanEventRecorder = &OtelSpanEventRecorder{}

const (
	// Padding value when an odd number of keysAndValues is supplied.
	missingAttributeValue = "MISSING"
	// Key under which any malformed remainder of the pairs is dumped.
	invalidAttributeKey = "invalidKeysAndValues"
)

// OtelSpanEventRecorder records log events as OpenTelemetry span events,
// converting key-value pairs to span attributes.
type OtelSpanEventRecorder struct {
	span trace.Span
}

func NewOtelSpanEventRecorder(span trace.Span) *OtelSpanEventRecorder {
	return &OtelSpanEventRecorder{span: span}
}

func (ser *OtelSpanEventRecorder) TraceID() string {
	return ser.span.SpanContext().TraceID().String()
}

func (ser *OtelSpanEventRecorder) SpanID() string {
	return ser.span.SpanContext().SpanID().String()
}

func (ser *OtelSpanEventRecorder) RecordEvent(name string, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
}

// RecordError additionally flips the span status to error.
func (ser *OtelSpanEventRecorder) RecordError(name string, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
	ser.span.SetStatus(codes.Error, name)
}

func kvToOtelAttributes(keysAndValues ...any) []attribute.KeyValue {
	if len(keysAndValues)%2 != 0 {
		keysAndValues = append(keysAndValues, missingAttributeValue)
	}

	attributes := make([]attribute.KeyValue, 0, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			// A non-string key poisons the rest of the pairs.
			attributes = append(attributes, attribute.String(
				invalidAttributeKey,
				fmt.Sprint(keysAndValues[i:]),
			))
			break
		}

		var kv attribute.KeyValue
		switch v := keysAndValues[i+1].(type) {
		case bool:
			kv = attribute.Bool(key, v)
		case int:
			kv = attribute.Int(key, v)
		case int16, int32, int64, uint8, uint16, uint32:
			kv = attribute.Int64(key, toInt64(v))
		case float32, float64:
			kv = attribute.Float64(key, toFloat64(v))
		case fmt.Stringer:
			kv = attribute.String(key, v.String())
		default:
			kv = attribute.String(key, fmt.Sprint(v))
		}

		attributes = append(attributes, kv)
	}

	return attributes
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	default:
		return 0
	}
}

func toFloat64(value any) float64 {
	switch v := value.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}
