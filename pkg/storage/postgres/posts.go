package postgres

import (
	"context"
	"fmt"
	"sentiment/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const (
	postsTable = "posts"
)

func (p *PgSQL) Posts(ctx context.Context) ([]domain.Post, error) {
	var rows []PgPost
	if err := p.Builder.From(postsTable).
		Order(goqu.I("created_at").Asc()).
		ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not get posts from pg: %w", err)
	}

	return pgPostsToDomain(rows)
}

// PostsByTicker matches the ticker column and, for documents whose ticker is
// a JSON array, any element equal to ticker.
func (p *PgSQL) PostsByTicker(ctx context.Context, ticker string) ([]domain.Post, error) {
	var rows []PgPost
	if err := p.Builder.From(postsTable).
		Where(goqu.Or(
			goqu.I("ticker").Eq(ticker),
			goqu.L("document -> 'ticker' @> to_jsonb(?::text)", ticker),
		)).
		Order(goqu.I("created_at").Asc()).
		ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not get posts by ticker from pg: %w", err)
	}

	return pgPostsToDomain(rows)
}

// StorePosts inserts posts and returns them with their generated ids.
func (p *PgSQL) StorePosts(ctx context.Context, posts ...domain.Post) ([]domain.Post, error) {
	if len(posts) == 0 {
		return []domain.Post{}, nil
	}

	rows := make([]PgPost, len(posts))
	for i, post := range posts {
		if err := rows[i].FromDomain(post); err != nil {
			return nil, err
		}
	}

	var result []PgPost
	if err := p.Builder.Insert(postsTable).
		Rows(rows).
		Returning(&PgPost{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store posts into pg: %w", err)
	}

	return pgPostsToDomain(result)
}
