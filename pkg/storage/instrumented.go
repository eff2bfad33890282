package storage

import (
	"context"
	"sentiment/pkg/domain"
	"sentiment/pkg/metrics"
	"time"
)

// instrumented decorates a Storage with query latency metrics.
type instrumented struct {
	Storage

	driver string
}

// WithMetrics wraps s so that the latency of every query is observed in
// metrics.StorageQueryDuration, labelled by driver, operation and outcome.
func WithMetrics(driver string, s Storage) Storage {
	return &instrumented{Storage: s, driver: driver}
}

func (i *instrumented) observe(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.StorageQueryDuration.
		WithLabelValues(i.driver, operation, outcome).
		Observe(time.Since(start).Seconds())
}

func (i *instrumented) Posts(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	posts, err := i.Storage.Posts(ctx)
	i.observe("posts", start, err)

	return posts, err //nolint: wrapcheck
}

func (i *instrumented) PostsByTicker(ctx context.Context, ticker string) ([]domain.Post, error) {
	start := time.Now()
	posts, err := i.Storage.PostsByTicker(ctx, ticker)
	i.observe("posts_by_ticker", start, err)

	return posts, err //nolint: wrapcheck
}

func (i *instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := i.Storage.Ping(ctx)
	i.observe("ping", start, err)

	return err //nolint: wrapcheck
}
