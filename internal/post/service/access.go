package service

import (
	"context"
	"errors"

	"inkwell/internal/post/models"
	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
	"inkwell/pkg/platform/sentinel"
)

// VisiblePosts lists the posts the caller may see: every post for a
// superuser, only their own otherwise. Filters AND-compose on top of
// that scope. An unknown username yields an empty listing, not an
// error; an unknown category is a validation failure.
func (s *Service) VisiblePosts(ctx context.Context, callerID id.UserID, superuser bool, filters models.Filters) ([]*models.Post, error) {
	scope := models.ListScope{}
	if !superuser {
		owner := callerID
		scope.OwnerID = &owner
	}

	if filters.Category != "" {
		category, err := models.ParseCategory(filters.Category)
		if err != nil {
			return nil, err
		}
		scope.Category = &category
	}

	if filters.Username != "" {
		ownerID, err := s.users.ResolveUsername(ctx, filters.Username)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return []*models.Post{}, nil
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve username")
		}
		// A non-superuser asking for another user's posts gets the
		// empty intersection of the two owner constraints.
		if scope.OwnerID != nil && *scope.OwnerID != ownerID {
			return []*models.Post{}, nil
		}
		scope.OwnerID = &ownerID
	}

	posts, err := s.posts.List(ctx, scope)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list posts")
	}
	return posts, nil
}

// GetPost retrieves one post through the caller's visible scope.
// Ownership mismatches surface as not-found to avoid existence leakage.
func (s *Service) GetPost(ctx context.Context, postID id.PostID, callerID id.UserID, superuser bool) (*models.Post, error) {
	return s.scopedPost(ctx, postID, callerID, superuser)
}

// PublicPosts lists published posts for anonymous callers, served from
// the cache when warm.
func (s *Service) PublicPosts(ctx context.Context) ([]*models.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.GetList(ctx); ok {
			if s.metrics != nil {
				s.metrics.PublicCacheHits.Inc()
			}
			return posts, nil
		}
		if s.metrics != nil {
			s.metrics.PublicCacheMiss.Inc()
		}
	}

	posts, err := s.posts.List(ctx, models.ListScope{Published: true})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list published posts")
	}
	if s.cache != nil {
		s.cache.SetList(ctx, posts)
	}
	return posts, nil
}

// PublicPost retrieves one published post. A nonexistent post and an
// unpublished one are indistinguishable to anonymous callers.
func (s *Service) PublicPost(ctx context.Context, postID id.PostID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "post not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load post")
	}
	if !post.Publish {
		return nil, dErrors.New(dErrors.CodeNotFound, "post not found")
	}
	return post, nil
}
