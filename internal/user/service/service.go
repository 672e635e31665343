// Package service manages user accounts: superuser-provisioned creation
// with a generated credential, and deletion with its cascade. The
// cascade deletes the user's posts but never their audit history; log
// references dangle to null instead.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell/internal/platform/metrics"
	"inkwell/internal/user/models"
	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
	"inkwell/pkg/email"
	"inkwell/pkg/notify"
	"inkwell/pkg/platform/sentinel"
	"inkwell/pkg/requestcontext"
	"inkwell/pkg/secrets"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	Delete(ctx context.Context, userID id.UserID) error
}

// PostCascade removes a deleted user's posts and reports their ids.
type PostCascade interface {
	DeleteByOwner(ctx context.Context, ownerID id.UserID) ([]id.PostID, error)
}

// LogDetacher nils dangling audit references without touching the
// entries themselves.
type LogDetacher interface {
	DetachUser(ctx context.Context, userID id.UserID) error
	DetachPost(ctx context.Context, postID id.PostID) error
}

// StoreTx provides the all-or-nothing boundary around the deletion
// cascade.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service orchestrates account lifecycle.
type Service struct {
	users    UserStore
	posts    PostCascade
	logs     LogDetacher
	tx       StoreTx
	logger   *slog.Logger
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithNotifier enables invite delivery for newly created accounts.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(users UserStore, posts PostCascade, logs LogDetacher, tx StoreTx, opts ...Option) *Service {
	s := &Service{
		users:  users,
		posts:  posts,
		logs:   logs,
		tx:     tx,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create provisions an account with a generated credential. When the
// request asks for an invite, the credential is delivered to the new
// user's email best-effort; delivery failure never fails the creation.
func (s *Service) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.FirstName == "" && req.LastName == "" {
		req.FirstName, req.LastName = email.DeriveNameFromEmail(req.Email)
	}

	credential, err := secrets.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate credential")
	}
	hash, err := secrets.Hash(credential)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash credential")
	}

	user := &models.User{
		ID:           id.NewUserID(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Superuser:    req.Superuser,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "username is already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	s.logger.InfoContext(ctx, "user_created",
		"user_id", user.ID.String(),
		"username", user.Username,
		"superuser", user.Superuser,
		"request_id", requestcontext.RequestID(ctx),
	)

	if req.SendInvite {
		subject := fmt.Sprintf("Welcome %s", user.Username)
		body := fmt.Sprintf(
			"We invite you to write blog posts on our website.\nYour username and password are %s, %s. Change it as soon as you log in.",
			user.Username, credential,
		)
		notify.Broadcast(s.notifier, s.logger, []string{user.Email}, subject, body)
	}

	return user, nil
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Delete removes an account, cascades to its posts, and detaches the
// audit trail's references. The trail itself survives: action and
// timestamp stay, the user and post references become null.
func (s *Service) Delete(ctx context.Context, userID id.UserID) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		deletedPosts, err := s.posts.DeleteByOwner(txCtx, userID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user posts")
		}
		for _, postID := range deletedPosts {
			if err := s.logs.DetachPost(txCtx, postID); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to detach log references")
			}
		}
		if err := s.logs.DetachUser(txCtx, userID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to detach log references")
		}
		if err := s.users.Delete(txCtx, userID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersDeleted()
	}
	s.logger.InfoContext(ctx, "user_deleted",
		"user_id", userID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
