package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/go-faster/jx"
)

const (
	// IDField is the name of the store-generated identifier attribute.
	IDField = "_id"
	// TickerField is the name of the ticker attribute posts are filtered on.
	TickerField = "ticker"
)

// Post is a social-media post tagged with a stock ticker, as written by the
// ingestion pipeline. Only the identifier and ticker are typed; every other
// attribute is carried as-is in Fields.
type Post struct {
	// ID is the store-generated identifier (Mongo ObjectID hex or row UUID).
	// Any other identifier form stays in Fields under IDField.
	ID string
	// Ticker is the ticker symbol when the document stores it as a non-empty
	// string.
	Ticker string
	// Fields holds the remaining attributes (post text, sentiment, ...). A
	// ticker stored in any other form stays here under TickerField.
	Fields map[string]any
}

// NormalizeTicker returns the form tickers are stored and compared in.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(ticker)
}

// Encode writes p as a single flat JSON object equal to the stored document:
// _id first, then ticker, then the remaining fields sorted by key. When ID or
// Ticker is empty, a value stored under the same key in Fields is written
// as-is instead.
func (p Post) Encode(e *jx.Encoder) error {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		if k == IDField || k == TickerField {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	e.ObjStart()
	if err := p.encodeKnown(e, IDField, p.ID); err != nil {
		return err
	}
	if err := p.encodeKnown(e, TickerField, p.Ticker); err != nil {
		return err
	}
	for _, k := range keys {
		if err := encodeField(e, k, p.Fields[k]); err != nil {
			return err
		}
	}
	e.ObjEnd()

	return nil
}

// encodeKnown writes the typed value of key, or the raw Fields entry when the
// typed value is empty.
func (p Post) encodeKnown(e *jx.Encoder, key, typed string) error {
	if typed != "" {
		e.FieldStart(key)
		e.Str(typed)

		return nil
	}
	if v, ok := p.Fields[key]; ok {
		return encodeField(e, key, v)
	}

	return nil
}

func encodeField(e *jx.Encoder, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode post field %q: %w", key, err)
	}
	e.FieldStart(key)
	e.Raw(raw)

	return nil
}

// MarshalJSON implements json.Marshaler using Encode.
func (p Post) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	if err := p.Encode(&e); err != nil {
		return nil, err
	}

	return e.Bytes(), nil
}
