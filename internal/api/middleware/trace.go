package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/oetprep/internal/api/shared"
	"github.com/phrazzld/oetprep/internal/platform/logger"
)

// TraceHeader echoes the request trace id to clients.
const TraceHeader = "X-Trace-ID"

// NewTraceMiddleware adds a trace id to every request, along with a
// request logger that carries it.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			reqLog := log.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, reqLog)

			reqLog.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(TraceHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
