package admin

import (
	"log/slog"
	"net/http"

	"inkwell/pkg/requestcontext"
)

// RequireSuperuser gates a route on the superuser claim set by the auth
// middleware. Must be mounted after RequireAuth.
func RequireSuperuser(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.Superuser(ctx) {
				logger.WarnContext(ctx, "forbidden - superuser required",
					"user_id", requestcontext.UserID(ctx).String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"superuser role required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
