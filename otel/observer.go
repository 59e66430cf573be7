// Package otel provides OpenTelemetry integration for tool dispatch:
// per-call metrics and spans, plus optional OTLP trace export.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/opensvm/osvm-mcp/tools"
)

// DispatchObserver records dispatch signals into OpenTelemetry.
type DispatchObserver struct {
	tracer trace.Tracer

	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

// NewDispatchObserver creates an observer bound to the provided meter and
// tracer.
func NewDispatchObserver(meter metric.Meter, tracer trace.Tracer) (*DispatchObserver, error) {
	calls, err := meter.Int64Counter(
		"osvm.tool.calls",
		metric.WithDescription("Number of dispatched tool calls"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"osvm.tool.latency",
		metric.WithDescription("Tool call latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchObserver{
		tracer:  tracer,
		calls:   calls,
		latency: latency,
	}, nil
}

// ObserveCall records one dispatched call. Implements tools.Observer.
func (o *DispatchObserver) ObserveCall(observation tools.CallObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool", observation.Tool),
		attribute.String("outcome", observation.Outcome),
	}
	if observation.ErrorCode != 0 {
		attrs = append(attrs, attribute.Int("error_code", observation.ErrorCode))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.calls.Add(ctx, 1, options)
	o.latency.Record(ctx, float64(observation.Duration)/float64(time.Second), options)

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "tool.call", trace.WithAttributes(attrs...))
	if observation.Outcome != tools.OutcomeOK {
		span.SetStatus(codes.Error, observation.Outcome)
	}
	span.End()
}
