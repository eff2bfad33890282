package handler

import (
	"net/http"
	"sentiment/pkg/logger"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

func writeStatus(w http.ResponseWriter, r *http.Request, code int, status string) {
	writeJSON(r.Context(), w, code, func(e *jx.Encoder) error {
		e.ObjStart()
		e.FieldStart("status")
		e.Str(status)
		e.ObjEnd()

		return nil
	})
}

// Liveness reports that the process is serving requests.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, r, http.StatusOK, "ok")
}

// Readiness reports 503 while the document store cannot be reached.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Posts.Ready(r.Context()); err != nil {
		logger.Warn(r.Context(), "store not ready", zap.Error(err))
		writeStatus(w, r, http.StatusServiceUnavailable, "unavailable")

		return
	}

	writeStatus(w, r, http.StatusOK, "ok")
}
