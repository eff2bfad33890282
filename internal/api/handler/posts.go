package handler

import (
	"net/http"
	"sentiment/pkg/domain"

	"github.com/go-faster/jx"
)

// TickerPathValue is the path wildcard holding the requested ticker.
const TickerPathValue = "stock_ticker"

// AllPosts serves GET /api/allPosts: {"posts":[...]}.
func (h *Handler) AllPosts(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}

	posts, err := h.deps.Posts.All(r.Context())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) error {
		e.ObjStart()
		e.FieldStart("posts")
		if err := encodePosts(e, posts); err != nil {
			return err
		}
		e.ObjEnd()

		return nil
	})
}

// TickerPosts serves GET /api/ticker/{stock_ticker}:
// {"ticker":"<UPPER>","posts":[...]}.
func (h *Handler) TickerPosts(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}

	ticker, posts, err := h.deps.Posts.ByTicker(r.Context(), r.PathValue(TickerPathValue))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) error {
		e.ObjStart()
		e.FieldStart("ticker")
		e.Str(ticker)
		e.FieldStart("posts")
		if err := encodePosts(e, posts); err != nil {
			return err
		}
		e.ObjEnd()

		return nil
	})
}

// encodePosts writes posts as an array; a nil slice is written as [].
func encodePosts(e *jx.Encoder, posts []domain.Post) error {
	e.ArrStart()
	for _, p := range posts {
		if err := p.Encode(e); err != nil {
			return err
		}
	}
	e.ArrEnd()

	return nil
}
