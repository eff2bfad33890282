// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the posts API.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"sentiment/internal/api/handler"
	"sentiment/internal/config"
	"sentiment/pkg/controller"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const meterName = "sentiment/internal/api"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults; a zero RequestTimeout
// disables the per-request timeout.
type Options struct {
	// HandlerOptions controls error reporting of the API handlers.
	HandlerOptions handler.Options
	// CORS holds the headers set on /api/* responses.
	CORS controller.CORSOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds handling of a single request via controller.WithTimeout.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// Registerer receives the otel exporter's collector. Nil means
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Gatherer serves MetricsPath. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		HandlerOptions: handler.Options{
			HideErrorDetails: cfg.HTTP.HideErrorDetails,
		},
		CORS: controller.CORSOptions{
			AllowOrigin:           cfg.CORS.AllowOrigin,
			AllowMethods:          cfg.CORS.AllowMethods,
			AllowHeaders:          cfg.CORS.AllowHeaders,
			ShortCircuitPreflight: cfg.CORS.ShortCircuitPreflight,
		},

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	handler.Deps
}

// apiMux routes /api/*. Patterns carry no method so the handlers answer
// non-GET requests with their own JSON 405.
func apiMux(h *handler.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/allPosts", h.AllPosts)
	mux.HandleFunc("/api/ticker/{"+handler.TickerPathValue+"}", h.TickerPosts)
	mux.HandleFunc("/api/", h.NotFound)

	return mux
}

// withAPICORS applies the CORS middleware to /api and /api/* only.
func withAPICORS(opts controller.CORSOptions, next http.Handler) http.Handler {
	cors := controller.WithCORS(opts)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			cors.ServeHTTP(w, r)

			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - /api/* routes wrapped with the CORS middleware
// - liveness and readiness probes
// - Prometheus metrics endpoint (MetricsPath) fed by client_golang and the otel exporter
// - Embedded OpenAPI spec and Swagger UI
// - pprof endpoints for profiling
// Every request goes through the logger middleware and a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	h := handler.New(deps.Deps, opts.HandlerOptions)

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	withMetrics, err := controller.WithMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics middleware: %w", err)
	}

	// specs file
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// swagger playground
	mux.Handle("/docs/", v5emb.New(
		"WSB Sentiment Posts API",
		"/specs/v1.yaml",
		"/docs/",
	))

	// probes
	mux.HandleFunc("/healthz", h.Liveness)
	mux.HandleFunc("/readyz", h.Readiness)

	// api
	mux.Handle("/api/", apiMux(h))

	// pprof
	mux.Handle("/debug/pprof/", controller.PprofMux("/debug/pprof"))

	// metrics must see the request the mux annotates with its pattern, so it
	// sits inside the timeout handler
	root := withMetrics(mux)
	if opts.RequestTimeout > 0 {
		root = controller.WithTimeout(opts.RequestTimeout, `{"error":"request timed out"}`)(root)
	}
	// CORS sits outside the timeout handler so timed-out /api responses carry
	// the headers too
	root = withAPICORS(opts.CORS, root)
	root = controller.WithLogger(root)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           root,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
