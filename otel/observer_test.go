package otel_test

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/opensvm/osvm-mcp/otel"
	"github.com/opensvm/osvm-mcp/tools"
)

type observerFixture struct {
	observer *otel.DispatchObserver
	reader   *sdkmetric.ManualReader
	spans    *tracetest.SpanRecorder
}

func newObserverFixture(t *testing.T) *observerFixture {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = meterProvider.Shutdown(context.Background()) })

	spans := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tracerProvider.Shutdown(context.Background()) })

	observer, err := otel.NewDispatchObserver(
		meterProvider.Meter("test"),
		tracerProvider.Tracer("test"),
	)
	if err != nil {
		t.Fatalf("NewDispatchObserver() error = %v", err)
	}
	return &observerFixture{observer: observer, reader: reader, spans: spans}
}

func (f *observerFixture) collect(t *testing.T) metricdata.ScopeMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := f.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(rm.ScopeMetrics) != 1 {
		t.Fatalf("got %d metric scopes, want 1", len(rm.ScopeMetrics))
	}
	return rm.ScopeMetrics[0]
}

func findMetric(t *testing.T, scope metricdata.ScopeMetrics, name string) metricdata.Metrics {
	t.Helper()
	for _, m := range scope.Metrics {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("metric %q not recorded", name)
	return metricdata.Metrics{}
}

func TestDispatchObserverRecordsMetrics(t *testing.T) {
	f := newObserverFixture(t)

	f.observer.ObserveCall(tools.CallObservation{
		Tool:     "get_slot",
		Outcome:  tools.OutcomeOK,
		Duration: 250 * time.Millisecond,
	})
	f.observer.ObserveCall(tools.CallObservation{
		Tool:     "get_slot",
		Outcome:  tools.OutcomeOK,
		Duration: 50 * time.Millisecond,
	})

	scope := f.collect(t)

	calls, ok := findMetric(t, scope, "osvm.tool.calls").Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("osvm.tool.calls is not an int64 sum")
	}
	if len(calls.DataPoints) != 1 {
		t.Fatalf("got %d call datapoints, want 1", len(calls.DataPoints))
	}
	point := calls.DataPoints[0]
	if point.Value != 2 {
		t.Fatalf("call count = %d, want 2", point.Value)
	}
	if tool, _ := point.Attributes.Value(attribute.Key("tool")); tool.AsString() != "get_slot" {
		t.Fatalf("tool attribute = %q, want get_slot", tool.AsString())
	}
	if outcome, _ := point.Attributes.Value(attribute.Key("outcome")); outcome.AsString() != tools.OutcomeOK {
		t.Fatalf("outcome attribute = %q, want %q", outcome.AsString(), tools.OutcomeOK)
	}

	latency, ok := findMetric(t, scope, "osvm.tool.latency").Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("osvm.tool.latency is not a float64 histogram")
	}
	if len(latency.DataPoints) != 1 || latency.DataPoints[0].Count != 2 {
		t.Fatalf("latency datapoints = %+v, want one point with count 2", latency.DataPoints)
	}
	if got := latency.DataPoints[0].Sum; got != 0.3 {
		t.Fatalf("latency sum = %v, want 0.3", got)
	}
}

func TestDispatchObserverErrorCodeAttribute(t *testing.T) {
	f := newObserverFixture(t)

	f.observer.ObserveCall(tools.CallObservation{
		Tool:      "get_transaction",
		Outcome:   tools.OutcomeProtocolError,
		ErrorCode: -32602,
	})

	scope := f.collect(t)
	calls, ok := findMetric(t, scope, "osvm.tool.calls").Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("osvm.tool.calls is not an int64 sum")
	}
	code, found := calls.DataPoints[0].Attributes.Value(attribute.Key("error_code"))
	if !found {
		t.Fatal("error_code attribute missing on failed call")
	}
	if code.AsInt64() != -32602 {
		t.Fatalf("error_code = %d, want -32602", code.AsInt64())
	}
}

func TestDispatchObserverSpans(t *testing.T) {
	f := newObserverFixture(t)

	f.observer.ObserveCall(tools.CallObservation{Tool: "get_slot", Outcome: tools.OutcomeOK})
	f.observer.ObserveCall(tools.CallObservation{Tool: "get_block", Outcome: tools.OutcomeToolError})

	ended := f.spans.Ended()
	if len(ended) != 2 {
		t.Fatalf("got %d spans, want 2", len(ended))
	}
	for _, span := range ended {
		if span.Name() != "tool.call" {
			t.Fatalf("span name = %q, want tool.call", span.Name())
		}
	}
	if ended[0].Status().Code == codes.Error {
		t.Fatal("ok call span marked as error")
	}
	if ended[1].Status().Code != codes.Error {
		t.Fatal("failed call span not marked as error")
	}
}

func TestDispatchObserverNilReceiver(t *testing.T) {
	var observer *otel.DispatchObserver
	// Must not panic when observability was never configured.
	observer.ObserveCall(tools.CallObservation{Tool: "get_slot", Outcome: tools.OutcomeOK})
}
