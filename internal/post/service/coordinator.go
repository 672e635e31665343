package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"inkwell/internal/post/models"
	"inkwell/internal/translog"
	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
	"inkwell/pkg/notify"
	"inkwell/pkg/platform/sentinel"
	"inkwell/pkg/requestcontext"
)

// Create inserts a post owned by the caller and records a CREATE entry.
// Both writes commit together or neither does. New posts start as
// unpublished drafts.
func (s *Service) Create(ctx context.Context, ownerID id.UserID, title, content string) (*models.Post, error) {
	ctx, span := s.tracer.Start(ctx, "post.create")
	defer span.End()
	start := time.Now()

	now := requestcontext.Now(ctx)
	post, err := models.NewPost(id.NewPostID(), ownerID, title, content, now)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.posts.Create(txCtx, post); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create post")
		}
		entry := translog.NewEntry(ownerID, post.ID, translog.ActionCreate, now)
		if err := s.logs.Append(txCtx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("post.id", post.ID.String()))
	s.afterMutation(ctx, start, translog.ActionCreate, post.ID)
	return post, nil
}

// Update applies a full or partial change set on behalf of the caller.
// Only the owner may edit; superusers are explicitly barred here, the
// archive toggle being their single lever. The rejection is an explicit
// unauthorized, unlike the read path which hides foreign posts as 404.
func (s *Service) Update(ctx context.Context, postID id.PostID, callerID id.UserID, superuser bool, changes models.ChangeSet) (*models.Post, error) {
	ctx, span := s.tracer.Start(ctx, "post.update")
	defer span.End()
	start := time.Now()

	post, err := s.scopedPost(ctx, postID, callerID, superuser)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != callerID {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the post owner may edit it")
	}

	now := requestcontext.Now(ctx)
	if err := changes.Apply(post, now); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.posts.Update(txCtx, post); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update post")
		}
		entry := translog.NewEntry(callerID, post.ID, translog.ActionUpdate, now)
		if err := s.logs.Append(txCtx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, start, translog.ActionUpdate, post.ID)
	return post, nil
}

// Delete removes a post from the caller's editable scope and records a
// DELETE entry. No separate ownership check runs: the scope already
// restricts non-superusers to their own posts. The entry is appended
// before the row goes away so its post reference is valid at insert
// time; the deletion then detaches every log reference to the post,
// the fresh entry included.
func (s *Service) Delete(ctx context.Context, postID id.PostID, callerID id.UserID, superuser bool) error {
	ctx, span := s.tracer.Start(ctx, "post.delete")
	defer span.End()
	start := time.Now()

	post, err := s.scopedPost(ctx, postID, callerID, superuser)
	if err != nil {
		return err
	}

	now := requestcontext.Now(ctx)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entry := translog.NewEntry(callerID, post.ID, translog.ActionDelete, now)
		if err := s.logs.Append(txCtx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
		}
		if err := s.posts.Delete(txCtx, post.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete post")
		}
		if err := s.logs.DetachPost(txCtx, post.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to detach log references")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx, start, translog.ActionDelete, post.ID)
	return nil
}

// SetArchiveFlag toggles only the archive flag. Superuser-only path,
// enforced at the router. Archive changes are intentionally excluded
// from the audit trail and from the generic update path.
func (s *Service) SetArchiveFlag(ctx context.Context, postID id.PostID, archive bool) (*models.Post, error) {
	ctx, span := s.tracer.Start(ctx, "post.set_archive")
	defer span.End()

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "post not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load post")
	}

	post.Archive = archive
	post.UpdatedAt = requestcontext.Now(ctx)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update archive flag")
	}

	if s.metrics != nil {
		s.metrics.ArchiveToggles.Inc()
	}
	s.invalidateCache(ctx)
	s.logger.InfoContext(ctx, "post_archive_toggled",
		"post_id", post.ID.String(),
		"archive", archive,
		"user_id", requestcontext.UserID(ctx).String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return post, nil
}

// scopedPost fetches a post through the caller's visible scope:
// superusers see every post, everyone else only their own. Posts
// outside the scope are reported as not found, never as forbidden.
func (s *Service) scopedPost(ctx context.Context, postID id.PostID, callerID id.UserID, superuser bool) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "post not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load post")
	}
	if !superuser && post.OwnerID != callerID {
		return nil, dErrors.New(dErrors.CodeNotFound, "post not found")
	}
	return post, nil
}

func (s *Service) afterMutation(ctx context.Context, start time.Time, action translog.Action, postID id.PostID) {
	if s.metrics != nil {
		s.metrics.IncrementMutation(string(action))
		s.metrics.ObserveMutation(start)
	}
	s.invalidateCache(ctx)

	username := requestcontext.Username(ctx)
	s.logger.InfoContext(ctx, "post_transaction",
		"action", string(action),
		"post_id", postID.String(),
		"user_id", requestcontext.UserID(ctx).String(),
		"username", username,
		"request_id", requestcontext.RequestID(ctx),
		"log_type", "audit",
	)

	// Best-effort admin notification; never blocks or fails the request.
	subject := fmt.Sprintf("Post %s", action)
	body := fmt.Sprintf("%s - %s %s on post id %s\nNote - All date time is in UTC",
		requestcontext.Now(ctx).Format(time.RFC3339), username, action, postID)
	notify.Broadcast(s.notifier, s.logger, s.adminEmails, subject, body)
}
