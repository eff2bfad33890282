package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sentiment/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgPost struct {
	ID        uuid.UUID       `db:"id"         goqu:"skipinsert"`
	Ticker    sql.NullString  `db:"ticker"`
	Document  json.RawMessage `db:"document"`
	CreatedAt time.Time       `db:"created_at" goqu:"skipinsert"`
}

// ToDomain flattens the row into a post. The row id replaces any _id stored
// inside the document.
func (p *PgPost) ToDomain() (domain.Post, error) {
	fields := map[string]any{}
	if len(p.Document) > 0 {
		if err := json.Unmarshal(p.Document, &fields); err != nil {
			return domain.Post{}, fmt.Errorf("could not unmarshal post document: %w", err)
		}
	}
	delete(fields, domain.IDField)

	post := domain.Post{
		ID:     p.ID.String(),
		Fields: fields,
	}
	if p.Ticker.Valid {
		post.Ticker = p.Ticker.String
	}

	return post, nil
}

// FromDomain builds a row from a post. A string ticker also lands in the
// ticker column; the document keeps every field except _id.
func (p *PgPost) FromDomain(post domain.Post) error {
	fields := make(map[string]any, len(post.Fields)+1)
	for k, v := range post.Fields {
		if k == domain.IDField {
			continue
		}
		fields[k] = v
	}
	if post.Ticker != "" {
		fields[domain.TickerField] = post.Ticker
	}

	doc, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("could not marshal post document: %w", err)
	}

	*p = PgPost{
		Ticker:   sql.NullString{String: post.Ticker, Valid: post.Ticker != ""},
		Document: doc,
	}

	return nil
}

func pgPostsToDomain(rows []PgPost) ([]domain.Post, error) {
	posts := make([]domain.Post, 0, len(rows))
	for i := range rows {
		post, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}
