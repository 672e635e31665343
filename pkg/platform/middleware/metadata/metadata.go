package metadata

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"inkwell/pkg/requestcontext"
)

// RequestID propagates an inbound X-Request-ID, minting one when absent,
// and echoes it on the response so callers can correlate log lines.
// Apply early in the chain.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
