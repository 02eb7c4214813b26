package middleware

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"docroom/internal/auth"
	"docroom/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("handled"))
	})
}

func TestCORSMiddlewareHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code, "non-preflight requests pass through")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/docs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.String(), "preflight must not reach the handler")
}

func TestRequestLoggerPassthrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	rec := httptest.NewRecorder()
	RequestLogger(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "handled", rec.Body.String())
}

func newTestIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	issuer, err := auth.NewIssuer(key, "docroom")
	require.NoError(t, err)
	return issuer
}

func TestTokenAuthNoToken(t *testing.T) {
	guard := TokenAuth(newTestIssuer(t))

	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenAuthInvalidToken(t *testing.T) {
	guard := TokenAuth(newTestIssuer(t))

	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenAuthValidToken(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	var seenUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	TokenAuth(issuer)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", seenUser)
}

func TestTokenAuthQueryParam(t *testing.T) {
	issuer := newTestIssuer(t)
	token, err := issuer.Issue("bob")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/docs?token="+token, nil)
	rec := httptest.NewRecorder()
	TokenAuth(issuer)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
