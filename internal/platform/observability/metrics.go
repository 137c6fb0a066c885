package observability

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type sectionMetrics struct {
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

var (
	sectionMetricsOnce sync.Once
	sectionInstruments sectionMetrics
)

// loadSectionMetrics creates the section instruments once, logging creation failures through the
// logger of the first caller.
func loadSectionMetrics(ctx context.Context) sectionMetrics {
	sectionMetricsOnce.Do(func() {
		sectionInstruments = newSectionMetrics(ctx, otel.Meter(instrumentation))
	})
	return sectionInstruments
}

func newSectionMetrics(ctx context.Context, meter metric.Meter) sectionMetrics {
	failures, failuresErr := meter.Int64Counter("pagemeta.section.failures",
		metric.WithDescription("Metadata sections that fell back to an empty result after a lookup failure"),
	)
	duration, durationErr := meter.Float64Histogram("pagemeta.section.duration",
		metric.WithDescription("Time spent assembling a metadata section"),
		metric.WithUnit("ms"),
	)
	if err := errors.Join(failuresErr, durationErr); err != nil {
		FromContext(ctx).Warn("section metrics unavailable", zap.Error(err))
	}
	return sectionMetrics{failures: failures, duration: duration}
}

// RecordSectionFailure counts a lookup failure reported by source, usually the failing method.
func RecordSectionFailure(ctx context.Context, source string) {
	counter := loadSectionMetrics(ctx).failures
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordSectionDuration records how long the named section took to assemble.
func RecordSectionDuration(ctx context.Context, section string, millis float64) {
	histogram := loadSectionMetrics(ctx).duration
	if histogram == nil {
		return
	}
	histogram.Record(ctx, millis, metric.WithAttributes(attribute.String("section", section)))
}
