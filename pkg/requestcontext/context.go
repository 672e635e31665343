// Package requestcontext provides HTTP-independent accessors for
// request-scoped values.
//
// Middleware sets the values; services only read them. Keeping the
// package free of net/http lets services stay transport-agnostic and
// lets tests inject identities and clocks without a middleware chain:
//
//	ctx = requestcontext.WithIdentity(ctx, userID, "alice", false)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "inkwell/pkg/domain"
)

type (
	userIDKey      struct{}
	usernameKey    struct{}
	superuserKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// UserID retrieves the authenticated user ID, or the nil ID when unset.
func UserID(ctx context.Context) id.UserID {
	if v, ok := ctx.Value(userIDKey{}).(id.UserID); ok {
		return v
	}
	return id.UserID{}
}

// Username retrieves the authenticated username, or "" when unset.
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey{}).(string); ok {
		return v
	}
	return ""
}

// Superuser reports whether the caller holds the superuser role.
func Superuser(ctx context.Context) bool {
	if v, ok := ctx.Value(superuserKey{}).(bool); ok {
		return v
	}
	return false
}

// WithIdentity injects the caller identity into the context.
func WithIdentity(ctx context.Context, userID id.UserID, username string, superuser bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, userID)
	ctx = context.WithValue(ctx, usernameKey{}, username)
	return context.WithValue(ctx, superuserKey{}, superuser)
}

// RequestID retrieves the request correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a request correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time, falling back to the wall clock
// for non-HTTP contexts such as tests and CLI tools.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// WithTime injects a fixed time, pinning the clock for a request or test.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
