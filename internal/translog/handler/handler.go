package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/translog"
	"inkwell/internal/translog/service"
	"inkwell/pkg/platform/httputil"
	"inkwell/pkg/requestcontext"
)

// Handler exposes the transaction log over HTTP. Mount behind the
// superuser middleware; the handler assumes the role check already ran.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/log", h.handleList)
}

type entryResponse struct {
	ID         string  `json:"id"`
	UserID     *string `json:"user_id"`
	PostID     *string `json:"post_id"`
	Action     string  `json:"action"`
	OccurredAt string  `json:"occurred_at"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.svc.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list transaction log",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEntryResponses(entries))
}

func toEntryResponses(entries []translog.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp := entryResponse{
			ID:         e.ID.String(),
			Action:     string(e.Action),
			OccurredAt: e.OccurredAt.Format(time.RFC3339Nano),
		}
		if e.UserID != nil {
			s := e.UserID.String()
			resp.UserID = &s
		}
		if e.PostID != nil {
			s := e.PostID.String()
			resp.PostID = &s
		}
		out = append(out, resp)
	}
	return out
}
