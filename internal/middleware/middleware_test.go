package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"catbox/internal/platform/logger"
	"catbox/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (v stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return v.claims, v.err
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anon"))
			return
		}
		_, _ = w.Write([]byte(c.UserID + "|" + c.Email))
	})
}

func TestAuthContext_DevHeaders(t *testing.T) {
	h := AuthContext(nil)(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "u1")
	req.Header.Set("X-Debug-User-Email", "a@b.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "u1|a@b.test", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "anon", rec.Body.String())
}

func TestAuthContext_Verifier(t *testing.T) {
	h := AuthContext(stubVerifier{claims: auth.Claims{UserID: "u9"}})(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "u9|", rec.Body.String())

	// Con verifier el header de debug se ignora.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	req.Header.Set("X-Debug-User-ID", "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "anon", rec.Body.String())
}

type adminSet map[string]bool

func (a adminSet) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return a[userID], nil
}

func TestRequireAdmin(t *testing.T) {
	h := AuthContext(nil)(RequireAdmin(adminSet{"boss": true})(echoUser()))

	cases := []struct {
		user string
		want int
	}{
		{"", http.StatusUnauthorized},
		{"u1", http.StatusForbidden},
		{"boss", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.user != "" {
			req.Header.Set("X-Debug-User-ID", tc.user)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.user)
	}
}

func TestRequestLogger_LogsStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := RequestLogger(logger.FromZap(zap.New(core)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cats/x", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "http request", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/cats/x", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
}
