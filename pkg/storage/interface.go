// Package storage defines the document store interfaces the application
// relies on. Backends (MongoDB, PostgreSQL) live in sub-packages and hand out
// pooled connections that are safe for concurrent use.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"sentiment/pkg/domain"
)

// PostStorage describes the read queries over the posts collection.
type PostStorage interface {
	// Posts returns every stored post (empty filter). It returns an empty,
	// non-nil slice when the collection is empty.
	Posts(ctx context.Context) ([]domain.Post, error)
	// PostsByTicker returns the posts whose ticker equals the given value.
	// The value is compared as-is; callers normalize it beforehand.
	PostsByTicker(ctx context.Context, ticker string) ([]domain.Post, error)
}

// Storage is a PostStorage bound to a connection pool.
type Storage interface {
	PostStorage

	// Ping checks that the underlying store is reachable.
	Ping(ctx context.Context) error
	// Close releases the connection pool. After Close, the instance should
	// not be used.
	Close(ctx context.Context) error
}
