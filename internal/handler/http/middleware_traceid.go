package http

import (
	"net/http"

	"github.com/MKhiriev/go-site-forms/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a request-scoped logger with a trace_id field and
// echoes the id back in X-Trace-ID. A missing or unusable incoming id is
// replaced.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := utils.TraceID(r.Header.Get(traceIDHeader))
		w.Header().Set(traceIDHeader, traceID)

		l := h.logger.With().Str("trace_id", traceID).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
