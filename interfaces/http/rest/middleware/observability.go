package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"keepsake-backend/pkg/observability"
)

// Observe records request counts and latency to CloudWatch and annotates
// the active trace segment. Metric publishing is best-effort and never
// blocks the response.
func Observe(metrics *observability.Metrics, tracer *observability.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := r.Context()
			if requestID := chimiddleware.GetReqID(ctx); requestID != "" {
				tracer.AddAnnotation(ctx, "request_id", requestID)
			}

			next.ServeHTTP(ww, r)

			dimensions := map[string]string{
				"Method": r.Method,
				"Status": strconv.Itoa(ww.Status()),
			}
			metrics.IncrementCounter(ctx, "RequestCount", dimensions)
			metrics.RecordDuration(ctx, "RequestLatency", time.Since(start), dimensions)
		})
	}
}
