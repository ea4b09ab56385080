package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCreateChildSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	ctx, span := provider.Tracer(TracerName).Start(context.Background(), "parent")
	traceID := GetTraceID(ctx)

	assert.NotEmpty(t, traceID)
	assert.NotEmpty(t, GetSpanID(ctx))

	AddSpanEvent(span, "checked", []attribute.KeyValue{attribute.Int("count", 1)})
	AddSpanError(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestGetTraceID_WithoutSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
