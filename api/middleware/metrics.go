package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storeops/storefront-backend/pkg/metrics"
)

// Metrics records request counts and latency, labeled by the chi route
// pattern rather than the raw path to keep cardinality bounded.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			pattern := r.URL.Path
			if ctx := chi.RouteContext(r.Context()); ctx != nil {
				if p := ctx.RoutePattern(); p != "" {
					pattern = p
				}
			}

			m.ObserveRequest(r.Method, pattern, strconv.Itoa(rec.status), time.Since(start))
		})
	}
}
