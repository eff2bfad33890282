// Package posts implements the read use cases over stored posts: listing all
// of them and filtering by ticker symbol.
package posts

import (
	"context"
	"sentiment/pkg/domain"
	"sentiment/pkg/serrors"
	"sentiment/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "sentiment/internal/posts"

// service is the concrete implementation of the Service interface.
type service struct {
	storage storage.Storage
	tracer  trace.Tracer
}

// New returns a Service reading from strg. A nil tp uses the global tracer
// provider.
func New(strg storage.Storage, tp trace.TracerProvider) Service {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return service{
		storage: strg,
		tracer:  tp.Tracer(tracerName),
	}
}

func (s service) All(ctx context.Context) ([]domain.Post, error) {
	ctx, span := s.tracer.Start(ctx, "posts.All")
	defer span.End()

	posts, err := s.storage.Posts(ctx)
	if err != nil {
		return nil, spanError(span, serrors.Wrap(serrors.ErrUpstream, err, "could not get posts"))
	}
	span.SetAttributes(attribute.Int("posts.count", len(posts)))

	return nonNil(posts), nil
}

// ByTicker uppercases ticker and queries it as-is; no other validation is
// applied, so an unknown or blank ticker yields an empty result.
func (s service) ByTicker(ctx context.Context, ticker string) (string, []domain.Post, error) {
	ctx, span := s.tracer.Start(ctx, "posts.ByTicker")
	defer span.End()

	ticker = domain.NormalizeTicker(ticker)
	span.SetAttributes(attribute.String("posts.ticker", ticker))

	posts, err := s.storage.PostsByTicker(ctx, ticker)
	if err != nil {
		return ticker, nil, spanError(span, serrors.Wrap(serrors.ErrUpstream, err, "could not get posts by ticker"))
	}
	span.SetAttributes(attribute.Int("posts.count", len(posts)))

	return ticker, nonNil(posts), nil
}

func (s service) Ready(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "posts.Ready")
	defer span.End()

	if err := s.storage.Ping(ctx); err != nil {
		return spanError(span, serrors.Wrap(serrors.ErrUpstream, err, "storage is not reachable"))
	}

	return nil
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}

func nonNil(posts []domain.Post) []domain.Post {
	if posts == nil {
		return []domain.Post{}
	}

	return posts
}
