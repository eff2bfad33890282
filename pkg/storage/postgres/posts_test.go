package postgres_test

import (
	"context"
	"encoding/json"
	"sentiment/pkg/domain"
	"sentiment/pkg/storage/postgres"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_Posts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		posts, err := pgSQL.Posts(ctx)
		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)

		posts, err = pgSQL.PostsByTicker(ctx, "GME")
		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)
	})

	stored, err := pgSQL.StorePosts(ctx,
		domain.Post{Ticker: "GME", Fields: map[string]any{"sentiment": 0.8}},
		domain.Post{Ticker: "AMC", Fields: map[string]any{"title": "to the moon"}},
		domain.Post{Ticker: "gme"},
		domain.Post{Fields: map[string]any{"ticker": []any{"GME", "TSLA"}}},
	)
	require.NoError(t, err)
	require.Len(t, stored, 4)
	for _, p := range stored {
		require.NotEmpty(t, p.ID)
	}

	t.Run("store nothing", func(t *testing.T) {
		res, err := pgSQL.StorePosts(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})

	t.Run("all posts", func(t *testing.T) {
		posts, err := pgSQL.Posts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 4)
	})

	t.Run("by ticker", func(t *testing.T) {
		posts, err := pgSQL.PostsByTicker(ctx, "GME")
		require.NoError(t, err)
		require.Len(t, posts, 2)

		var scalar, list int
		for _, p := range posts {
			if p.Ticker == "GME" {
				scalar++
				require.InDelta(t, 0.8, p.Fields["sentiment"], 0.0001)
			} else {
				list++
				require.Equal(t, []any{"GME", "TSLA"}, p.Fields["ticker"])
			}
		}
		require.Equal(t, 1, scalar)
		require.Equal(t, 1, list)
	})

	t.Run("unknown ticker", func(t *testing.T) {
		posts, err := pgSQL.PostsByTicker(ctx, "ZZZZ")
		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, pgSQL.Ping(ctx))
	})
}

func TestPgPost_RoundTrip(t *testing.T) {
	var row postgres.PgPost
	require.NoError(t, row.FromDomain(domain.Post{
		ID:     "ignored",
		Ticker: "GME",
		Fields: map[string]any{"_id": "x", "body": "hello"},
	}))
	require.True(t, row.Ticker.Valid)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(row.Document, &doc))
	require.Equal(t, map[string]any{"ticker": "GME", "body": "hello"}, doc)

	post, err := row.ToDomain()
	require.NoError(t, err)
	require.Equal(t, "GME", post.Ticker)
	require.Equal(t, "hello", post.Fields["body"])
	require.NotContains(t, post.Fields, "_id")
}

func TestPgPost_ToDomainInvalidDocument(t *testing.T) {
	row := postgres.PgPost{Document: json.RawMessage(`{"broken"`)}
	_, err := row.ToDomain()
	require.Error(t, err)
}
