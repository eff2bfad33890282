// Package handler implements the JSON HTTP handlers of the posts API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"sentiment/internal/posts"
	"sentiment/pkg/logger"
	"sentiment/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Client-facing messages for kinds without a message of their own, and for
// server errors when details are hidden.
const (
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgNotFound         = "Not Found"
	MsgUpstream         = "upstream error"
	MsgInternal         = "internal error"
)

type Deps struct {
	Posts posts.Service
}

// Options controls how errors are reported to clients.
type Options struct {
	// HideErrorDetails replaces the message of 5xx errors with a generic
	// one. By default the failing store's own error text is returned.
	HideErrorDetails bool
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, opts Options) *Handler {
	return &Handler{deps: deps, options: opts}
}

// ErrorResponse is the status code and client message an error maps to.
type ErrorResponse struct {
	StatusCode int
	Message    string
}

// NewError maps err to its HTTP status and client message and logs it.
// Server errors are logged with their full chain.
func (h *Handler) NewError(ctx context.Context, err error) ErrorResponse {
	var res ErrorResponse
	switch serrors.KindOf(err) {
	case serrors.ErrBadRequest:
		res = ErrorResponse{StatusCode: http.StatusBadRequest, Message: clientMessage(err)}
	case serrors.ErrNotFound:
		res = ErrorResponse{StatusCode: http.StatusNotFound, Message: clientMessage(err)}
	case serrors.ErrMethodNotAllowed:
		res = ErrorResponse{StatusCode: http.StatusMethodNotAllowed, Message: MsgMethodNotAllowed}
	case serrors.ErrUpstream:
		res = ErrorResponse{StatusCode: http.StatusInternalServerError, Message: MsgUpstream}
	default:
		res = ErrorResponse{StatusCode: http.StatusInternalServerError, Message: MsgInternal}
	}

	if res.StatusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		if !h.options.HideErrorDetails {
			res.Message = causeMessage(err)
		}
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err), zap.Int("status_code", res.StatusCode))
	}

	return res
}

// clientMessage prefers the message attached to a semantic error over the
// full chain, and falls back to the kind name.
func clientMessage(err error) string {
	var e *serrors.Error
	if errors.As(err, &e) && e.Message() != "" {
		return e.Message()
	}

	return err.Error()
}

// causeMessage returns the text of the error a semantic error wraps, which is
// the failure as reported by the store. Unwrapped errors report themselves.
func causeMessage(err error) string {
	var e *serrors.Error
	if errors.As(err, &e) && e.Cause() != nil {
		return e.Cause().Error()
	}

	return err.Error()
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	if res.StatusCode == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", http.MethodGet)
	}

	writeJSON(r.Context(), w, res.StatusCode, func(e *jx.Encoder) error {
		e.ObjStart()
		e.FieldStart("error")
		e.Str(res.Message)
		e.ObjEnd()

		return nil
	})
}

// writeJSON encodes the body before writing the status, so an encoding
// failure can still be answered with a 500.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, encode func(e *jx.Encoder) error) {
	var e jx.Encoder
	if err := encode(&e); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
		status = http.StatusInternalServerError
		e.Reset()
		e.ObjStart()
		e.FieldStart("error")
		e.Str(MsgInternal)
		e.ObjEnd()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		logger.Debug(ctx, "could not write response", zap.Error(err))
	}
}

// allowGet rejects any method other than GET before the store is touched.
func (h *Handler) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	h.writeError(w, r, serrors.KindOnly(serrors.ErrMethodNotAllowed))

	return false
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, serrors.With(serrors.ErrNotFound, MsgNotFound))
}
