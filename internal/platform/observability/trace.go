package observability

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"finitefield.org/hanko-seo/internal/platform/requestctx"
)

const tracerName = "finitefield.org/hanko-seo/internal/platform/observability"

// TraceMiddleware continues any W3C trace context on the request, starts a
// server span and records its identifiers for the request logger.
func TraceMiddleware(next http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", r.Method, SanitizeRoute(r.URL.Path)),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", SanitizeRoute(r.URL.Path)),
			),
		)
		defer span.End()

		sc := span.SpanContext()
		if sc.IsValid() {
			ctx = requestctx.WithTrace(ctx, requestctx.TraceInfo{
				TraceID: sc.TraceID().String(),
				SpanID:  sc.SpanID().String(),
				Sampled: sc.IsSampled(),
			})
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
