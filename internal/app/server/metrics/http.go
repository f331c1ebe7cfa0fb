package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMiddleware counts requests and records their latency per route pattern.
// If the instruments cannot be created it passes requests through untouched.
func HTTPMiddleware(mp metric.MeterProvider, namespace string) func(huma.Context, func(huma.Context)) {
	meter := mp.Meter(namespace)

	requests, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passThrough
	}

	duration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return passThrough
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		path := "unknown"
		if op := ctx.Operation(); op != nil && op.Path != "" {
			path = op.Path
		}
		attrs := metric.WithAttributes(
			attribute.String("method", ctx.Method()),
			attribute.String("path", path),
			attribute.String("status_code", strconv.Itoa(ctx.Status())),
		)

		requests.Add(ctx.Context(), 1, attrs)
		duration.Record(ctx.Context(), time.Since(start).Seconds(), attrs)
	}
}

func passThrough(ctx huma.Context, next func(huma.Context)) {
	next(ctx)
}
