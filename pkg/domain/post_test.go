package domain_test

import (
	"encoding/json"
	"math"
	"sentiment/pkg/domain"
	"testing"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTicker(t *testing.T) {
	require.Equal(t, "AAPL", domain.NormalizeTicker("aapl"))
	require.Equal(t, "BRK.B", domain.NormalizeTicker("brk.b"))
	require.Equal(t, "GME", domain.NormalizeTicker("GME"))
	require.Empty(t, domain.NormalizeTicker(""))
}

func TestPost_MarshalJSON_FlatDocument(t *testing.T) {
	p := domain.Post{
		ID:     "65f1c0ffee0000000000beef",
		Ticker: "AAPL",
		Fields: map[string]any{
			"sentiment": 1,
			"post":      "AAPL to the moon",
		},
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.Equal(t,
		`{"_id":"65f1c0ffee0000000000beef","ticker":"AAPL","post":"AAPL to the moon","sentiment":1}`,
		string(b))
}

func TestPost_MarshalJSON_ListTickerKeptVerbatim(t *testing.T) {
	p := domain.Post{
		ID: "1",
		Fields: map[string]any{
			"ticker":    []any{"GME", "AMC"},
			"sentiment": -1,
		},
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"_id":"1","ticker":["GME","AMC"],"sentiment":-1}`, string(b))
}

func TestPost_MarshalJSON_TypedFieldsWin(t *testing.T) {
	p := domain.Post{
		ID:     "typed",
		Ticker: "TSLA",
		Fields: map[string]any{
			"_id":    "stale",
			"ticker": "stale",
		},
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.Equal(t, `{"_id":"typed","ticker":"TSLA"}`, string(b))
}

func TestPost_MarshalJSON_UntypedKnownFieldsKeptVerbatim(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
	}{
		{
			name:   "numeric id",
			fields: map[string]any{"_id": 5, "ticker": "GME", "a": 1},
			want:   `{"_id":5,"ticker":"GME","a":1}`,
		},
		{
			name:   "empty ticker",
			fields: map[string]any{"ticker": "", "post": "hi"},
			want:   `{"ticker":"","post":"hi"}`,
		},
		{
			name:   "empty string id",
			fields: map[string]any{"_id": ""},
			want:   `{"_id":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(domain.Post{Fields: tt.fields})
			require.NoError(t, err)
			require.Equal(t, tt.want, string(b))
		})
	}
}

func TestPost_Encode_Empty(t *testing.T) {
	var e jx.Encoder
	require.NoError(t, domain.Post{}.Encode(&e))
	require.Equal(t, `{}`, string(e.Bytes()))
}

func TestPost_Encode_UnsupportedValue(t *testing.T) {
	var e jx.Encoder
	err := domain.Post{Fields: map[string]any{"score": math.Inf(1)}}.Encode(&e)
	require.Error(t, err)
}
