package assistant

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	requestsCounter   metric.Int64Counter
	requestsHistogram metric.Float64Histogram
	errorCounter      metric.Int64Counter
	tokensCounter     metric.Int64Counter
)

// InitMetrics registers custom OTel metric instruments for the assistant domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("assistant")

	var err error

	requestsCounter, err = meter.Int64Counter("assistant.requests.total",
		metric.WithDescription("Total number of assistant completion requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating requests counter: %w", err)
	}

	requestsHistogram, err = meter.Float64Histogram("assistant.request.duration",
		metric.WithDescription("Duration of assistant completion requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating requests histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("assistant.errors.total",
		metric.WithDescription("Total number of assistant failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	tokensCounter, err = meter.Int64Counter("assistant.tokens.total",
		metric.WithDescription("Total tokens consumed by completion requests"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return fmt.Errorf("creating tokens counter: %w", err)
	}

	return nil
}
