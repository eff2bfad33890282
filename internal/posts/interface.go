package posts

import (
	"context"
	"sentiment/pkg/domain"
)

//go:generate mockgen -package mockposts -source=interface.go -destination=mock/mockposts.go *
type Service interface {
	// All returns every stored post.
	All(ctx context.Context) ([]domain.Post, error)
	// ByTicker normalizes ticker and returns it with the posts tagged with it.
	ByTicker(ctx context.Context, ticker string) (string, []domain.Post, error)
	// Ready reports whether the document store is reachable.
	Ready(ctx context.Context) error
}
