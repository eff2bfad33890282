package controller

import "net/http"

// Default CORS header values served to the dashboard front-end.
const (
	DefaultAllowOrigin  = "https://www.wsb-analysis.ca"
	DefaultAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	DefaultAllowHeaders = "Content-Type, Authorization"
)

// CORSOptions holds the literal header values set by WithCORS.
type CORSOptions struct {
	// AllowOrigin is sent as Access-Control-Allow-Origin. It is never
	// derived from the request's Origin header.
	AllowOrigin string
	// AllowMethods is sent as Access-Control-Allow-Methods.
	AllowMethods string
	// AllowHeaders is sent as Access-Control-Allow-Headers.
	AllowHeaders string
	// ShortCircuitPreflight answers OPTIONS requests with 204 instead of
	// passing them to the wrapped handler.
	ShortCircuitPreflight bool
}

// DefaultCORSOptions returns the production header values. Preflight
// requests pass through to the wrapped handler.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowOrigin:  DefaultAllowOrigin,
		AllowMethods: DefaultAllowMethods,
		AllowHeaders: DefaultAllowHeaders,
	}
}

// WithCORS returns a middleware that sets the configured CORS headers on
// every response before the wrapped handler runs. Empty option values fall
// back to the defaults.
func WithCORS(opts CORSOptions) func(http.Handler) http.Handler {
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = DefaultAllowOrigin
	}
	if opts.AllowMethods == "" {
		opts.AllowMethods = DefaultAllowMethods
	}
	if opts.AllowHeaders == "" {
		opts.AllowHeaders = DefaultAllowHeaders
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", opts.AllowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", opts.AllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", opts.AllowHeaders)

			if opts.ShortCircuitPreflight && r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
