// Package handler exposes the superuser account-management endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/user/models"
	usersvc "inkwell/internal/user/service"
	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/httputil"
)

type Handler struct {
	users *usersvc.Service
}

func New(users *usersvc.Service) *Handler {
	return &Handler{users: users}
}

// Register mounts the account routes on a superuser-gated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/users", h.create)
	r.Delete("/users/{userID}", h.delete)
}

type createUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Superuser  bool   `json:"superuser"`
	SendInvite bool   `json:"send_invite"`
}

// userResponse deliberately has no credential field.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Superuser bool   `json:"superuser"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Superuser: u.Superuser,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), models.CreateUserRequest{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Superuser:  req.Superuser,
		SendInvite: req.SendInvite,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
