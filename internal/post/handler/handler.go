// Package handler exposes the post routes: the authenticated CRUD
// surface, the superuser archive toggle, and the anonymous read-only
// listing of published posts.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/post/models"
	"inkwell/internal/post/service"
	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
	"inkwell/pkg/platform/httputil"
	"inkwell/pkg/requestcontext"
)

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the authenticated post routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/posts", h.list)
	r.Post("/posts", h.create)
	r.Get("/posts/{postID}", h.get)
	r.Put("/posts/{postID}", h.replace)
	r.Patch("/posts/{postID}", h.patch)
	r.Delete("/posts/{postID}", h.delete)
}

// RegisterArchive mounts the archive toggle on a superuser-gated
// router. Full replacement of the archive resource is not a thing: PUT
// is refused outright, only PATCH flips the flag.
func (h *Handler) RegisterArchive(r chi.Router) {
	r.Put("/posts/archive/{postID}", h.archivePutRefused)
	r.Patch("/posts/archive/{postID}", h.archive)
}

// RegisterPublic mounts the anonymous read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/posts", h.publicList)
	r.Get("/posts/{postID}", h.publicGet)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filters := models.Filters{
		Username: r.URL.Query().Get("username"),
		Category: r.URL.Query().Get("category"),
	}

	posts, err := h.svc.VisiblePosts(ctx, requestcontext.UserID(ctx), requestcontext.Superuser(ctx), filters)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPostResponses(posts))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createPostRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	post, err := h.svc.Create(ctx, requestcontext.UserID(ctx), req.Title, req.Content)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID, err := id.ParsePostID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	post, err := h.svc.GetPost(ctx, postID, requestcontext.UserID(ctx), requestcontext.Superuser(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	var req replacePostRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	changes, err := req.toChangeSet()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.update(w, r, changes)
}

func (h *Handler) patch(w http.ResponseWriter, r *http.Request) {
	var req patchPostRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.update(w, r, req.toChangeSet())
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, changes models.ChangeSet) {
	ctx := r.Context()
	postID, err := id.ParsePostID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	post, err := h.svc.Update(ctx, postID, requestcontext.UserID(ctx), requestcontext.Superuser(ctx), changes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID, err := id.ParsePostID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.svc.Delete(ctx, postID, requestcontext.UserID(ctx), requestcontext.Superuser(ctx)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) archivePutRefused(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "archive state only accepts partial updates"))
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID, err := id.ParsePostID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req archiveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Archive == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "archive flag is required"))
		return
	}

	post, err := h.svc.SetArchiveFlag(ctx, postID, *req.Archive)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *Handler) publicList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	posts, err := h.svc.PublicPosts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list published posts",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPublicPostResponses(posts))
}

func (h *Handler) publicGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postID, err := id.ParsePostID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	post, err := h.svc.PublicPost(ctx, postID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPublicPostResponse(post))
}
