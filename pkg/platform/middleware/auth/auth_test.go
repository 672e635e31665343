package auth_test

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/middleware/auth"
	"inkwell/pkg/requestcontext"
	"inkwell/pkg/testutil"
)

const signingKey = "test-signing-key"

func signToken(t *testing.T, key string, claims auth.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func claimsFor(userID id.UserID, username string, superuser bool) auth.Claims {
	return auth.Claims{
		Username:  username,
		Superuser: superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// identityEcho records the identity the middleware injected.
type identityEcho struct {
	called    bool
	userID    id.UserID
	username  string
	superuser bool
}

func (e *identityEcho) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e.called = true
	e.userID = requestcontext.UserID(ctx)
	e.username = requestcontext.Username(ctx)
	e.superuser = requestcontext.Superuser(ctx)
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	validator := auth.NewValidator(signingKey)
	logger := slog.Default()

	t.Run("valid token injects identity", func(t *testing.T) {
		userID := id.NewUserID()
		echo := &identityEcho{}
		mw := auth.RequireAuth(validator, logger)(echo)

		req := testutil.NewRequest(t, http.MethodGet, "/")
		req.Header.Set("Authorization", "Bearer "+signToken(t, signingKey, claimsFor(userID, "ada", true)))

		rr := testutil.DoRequest(mw, req)
		testutil.AssertStatusOK(t, rr)
		require.True(t, echo.called)
		assert.Equal(t, userID, echo.userID)
		assert.Equal(t, "ada", echo.username)
		assert.True(t, echo.superuser)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		echo := &identityEcho{}
		mw := auth.RequireAuth(validator, logger)(echo)

		rr := testutil.DoRequest(mw, testutil.NewRequest(t, http.MethodGet, "/"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		assert.False(t, echo.called)
	})

	t.Run("wrong signing key is 401", func(t *testing.T) {
		echo := &identityEcho{}
		mw := auth.RequireAuth(validator, logger)(echo)

		req := testutil.NewRequest(t, http.MethodGet, "/")
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-key", claimsFor(id.NewUserID(), "ada", false)))

		rr := testutil.DoRequest(mw, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		assert.False(t, echo.called)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		echo := &identityEcho{}
		mw := auth.RequireAuth(validator, logger)(echo)

		claims := claimsFor(id.NewUserID(), "ada", false)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		req := testutil.NewRequest(t, http.MethodGet, "/")
		req.Header.Set("Authorization", "Bearer "+signToken(t, signingKey, claims))

		rr := testutil.DoRequest(mw, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("malformed subject is 401", func(t *testing.T) {
		echo := &identityEcho{}
		mw := auth.RequireAuth(validator, logger)(echo)

		claims := claimsFor(id.NewUserID(), "ada", false)
		claims.Subject = "not-a-uuid"
		req := testutil.NewRequest(t, http.MethodGet, "/")
		req.Header.Set("Authorization", "Bearer "+signToken(t, signingKey, claims))

		rr := testutil.DoRequest(mw, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
