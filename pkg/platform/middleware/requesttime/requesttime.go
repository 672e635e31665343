package requesttime

import (
	"net/http"
	"time"

	"inkwell/pkg/requestcontext"
)

// Pin freezes the clock once per request so every timestamp written in
// one mutating call (post row, log entry) agrees to the nanosecond.
func Pin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
