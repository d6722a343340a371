package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/stickynotes/internal/telemetry/metrics"
	"github.com/2beens/stickynotes/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a JSON 500. The error level log
// entry is what reaches sentry when it is enabled.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithFields(log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
					"route":  routeName(req),
					"stack":  string(debug.Stack()),
				}).Errorf("http: panic serving request: %v", rec)
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}

				pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
