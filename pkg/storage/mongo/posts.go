package mongo

import (
	"context"
	"fmt"
	"sentiment/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (m *Mongo) Posts(ctx context.Context) ([]domain.Post, error) {
	return m.find(ctx, bson.D{})
}

// PostsByTicker matches documents whose ticker equals the value, including
// documents storing ticker as an array that contains it.
func (m *Mongo) PostsByTicker(ctx context.Context, ticker string) ([]domain.Post, error) {
	return m.find(ctx, bson.D{{Key: domain.TickerField, Value: ticker}})
}

func (m *Mongo) find(ctx context.Context, filter bson.D) ([]domain.Post, error) {
	cur, err := m.Collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not find posts in mongo: %w", err)
	}

	// All closes the cursor on every path
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("could not decode posts from mongo: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, DocumentToDomain(doc))
	}

	return posts, nil
}

// DocumentToDomain converts a raw posts document into a domain.Post. An
// ObjectID or non-empty string _id becomes Post.ID, a non-empty string ticker
// becomes Post.Ticker, and every other attribute (including _id or ticker in
// any other form) is carried over unchanged in Fields.
func DocumentToDomain(doc bson.M) domain.Post {
	p := domain.Post{Fields: make(map[string]any, len(doc))}
	for k, v := range doc {
		switch k {
		case domain.IDField:
			switch id := v.(type) {
			case primitive.ObjectID:
				p.ID = id.Hex()
			case string:
				if id != "" {
					p.ID = id
				} else {
					p.Fields[k] = v
				}
			default:
				p.Fields[k] = v
			}
		case domain.TickerField:
			if s, ok := v.(string); ok && s != "" {
				p.Ticker = s
			} else {
				p.Fields[k] = v
			}
		default:
			p.Fields[k] = v
		}
	}

	return p
}
