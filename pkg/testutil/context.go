package testutil

import (
	"net/http"
	"time"

	id "inkwell/pkg/domain"
	"inkwell/pkg/requestcontext"
)

// WithIdentity stamps a caller identity onto the request context,
// simulating what the auth middleware does for authenticated requests.
func WithIdentity(req *http.Request, userID id.UserID, username string, superuser bool) *http.Request {
	ctx := requestcontext.WithIdentity(req.Context(), userID, username, superuser)
	return req.WithContext(ctx)
}

// WithFrozenClock pins the request clock so timestamps in assertions are
// deterministic.
func WithFrozenClock(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID sets a known request id for log correlation assertions.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
