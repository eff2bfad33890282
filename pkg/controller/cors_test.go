package controller_test

import (
	"net/http"
	"net/http/httptest"
	"sentiment/pkg/controller"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireDefaultCORSHeaders(t *testing.T, h http.Header) {
	t.Helper()

	require.Equal(t, "https://www.wsb-analysis.ca", h.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type, Authorization", h.Get("Access-Control-Allow-Headers"))
	require.Empty(t, h.Get("Access-Control-Allow-Credentials"))
}

func TestWithCORS_PreflightShortCircuit(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	opts := controller.DefaultCORSOptions()
	opts.ShortCircuitPreflight = true

	req := httptest.NewRequest(http.MethodOptions, "/api/allPosts", nil)
	rec := httptest.NewRecorder()

	controller.WithCORS(opts)(next).ServeHTTP(rec, req)

	require.False(t, called, "next handler should not be called for OPTIONS preflight")
	res := rec.Result()
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	requireDefaultCORSHeaders(t, res.Header)
}

func TestWithCORS_PreflightPassThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/allPosts", nil)
	rec := httptest.NewRecorder()
	controller.WithCORS(controller.DefaultCORSOptions())(next).ServeHTTP(rec, req)

	require.True(t, called)
	res := rec.Result()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	requireDefaultCORSHeaders(t, res.Header)
}

func TestWithCORS_NormalRequest(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("body"))
	})

	tests := []struct {
		name   string
		origin string
	}{
		{name: "no origin"},
		{name: "allowed origin", origin: "https://www.wsb-analysis.ca"},
		{name: "foreign origin is not reflected", origin: "https://evil.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/ticker/gme", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			controller.WithCORS(controller.DefaultCORSOptions())(next).ServeHTTP(rec, req)

			res := rec.Result()
			require.Equal(t, http.StatusTeapot, res.StatusCode)
			require.Equal(t, "body", rec.Body.String())
			requireDefaultCORSHeaders(t, res.Header)
		})
	}
}

func TestWithCORS_CustomValues(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	controller.WithCORS(controller.CORSOptions{AllowOrigin: "http://localhost:3000"})(next).ServeHTTP(rec, req)

	h := rec.Result().Header
	require.Equal(t, "http://localhost:3000", h.Get("Access-Control-Allow-Origin"))
	require.Equal(t, controller.DefaultAllowMethods, h.Get("Access-Control-Allow-Methods"))
	require.Equal(t, controller.DefaultAllowHeaders, h.Get("Access-Control-Allow-Headers"))
}
