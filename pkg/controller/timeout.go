package controller

import (
	"net/http"
	"time"
)

// jsonUnavailableWriter labels a 503 without a content type as JSON. The
// timeout handler writes its body straight to the writer it was given, so
// this is the only place the header can be set.
type jsonUnavailableWriter struct {
	http.ResponseWriter
}

func (w *jsonUnavailableWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *jsonUnavailableWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// WithTimeout bounds each request with http.TimeoutHandler and answers
// requests that run out of time with 503 and the JSON body.
func WithTimeout(timeout time.Duration, body string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, timeout, body)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(&jsonUnavailableWriter{ResponseWriter: w}, r)
		})
	}
}
