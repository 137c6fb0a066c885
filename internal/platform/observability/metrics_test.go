package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingMeter struct {
	noop.Meter
}

func (failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("counter rejected")
}

func TestNewSectionMetricsLogsCreationErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	metrics := newSectionMetrics(ctx, failingMeter{})
	if metrics.failures != nil {
		t.Fatal("expected failed counter to be left unset")
	}
	if metrics.duration == nil {
		t.Fatal("expected histogram to be created")
	}

	entries := logs.FilterMessage("section metrics unavailable").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "counter rejected" {
		t.Fatalf("unexpected error field %v", got)
	}
}

func TestNewSectionMetricsQuietOnSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	metrics := newSectionMetrics(ctx, noop.Meter{})
	if metrics.failures == nil || metrics.duration == nil {
		t.Fatal("expected both instruments")
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no logs, got %v", logs.All())
	}
}
