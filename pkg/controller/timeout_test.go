package controller_test

import (
	"net/http"
	"net/http/httptest"
	"sentiment/pkg/controller"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithTimeout(t *testing.T) {
	const body = `{"error":"request timed out"}`

	t.Run("timed out", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		rec := httptest.NewRecorder()
		controller.WithTimeout(10*time.Millisecond, body)(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/allPosts", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.JSONEq(t, body, rec.Body.String())
	})

	t.Run("in time", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte("openapi: 3.0.3"))
		})

		rec := httptest.NewRecorder()
		controller.WithTimeout(time.Second, body)(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/specs/v1.yaml", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
		require.Equal(t, "openapi: 3.0.3", rec.Body.String())
	})

	t.Run("handler's own 503 keeps its content type", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		rec := httptest.NewRecorder()
		controller.WithTimeout(time.Second, body)(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	})
}
