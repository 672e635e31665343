package models

import (
	"strings"
	"time"

	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
)

// MaxTitleLength bounds post titles.
const MaxTitleLength = 100

// Post is a blog entry. The three visibility flags are independent by
// contract: a post can legally be both published and archived, or
// neither. Nothing may enforce mutual exclusion between them.
type Post struct {
	ID        id.PostID
	OwnerID   id.UserID
	Title     string
	Content   string
	Draft     bool
	Publish   bool
	Archive   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPost builds a post owned by its creator. New posts start as drafts,
// unpublished and unarchived.
func NewPost(postID id.PostID, ownerID id.UserID, title, content string, now time.Time) (*Post, error) {
	p := &Post{
		ID:        postID,
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		Draft:     true,
		Publish:   false,
		Archive:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the field invariants.
func (p *Post) Validate() error {
	if p.OwnerID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "post owner is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title must not be empty")
	}
	if len(p.Title) > MaxTitleLength {
		return dErrors.New(dErrors.CodeValidation, "title exceeds 100 characters")
	}
	if strings.TrimSpace(p.Content) == "" {
		return dErrors.New(dErrors.CodeValidation, "content must not be empty")
	}
	return nil
}

// Clone returns a copy so stores can hand out posts without aliasing
// their internal state.
func (p *Post) Clone() *Post {
	c := *p
	return &c
}

// ChangeSet carries a full or partial update. Nil fields are left
// untouched; the HTTP layer fills every field for full replacement.
type ChangeSet struct {
	Title   *string
	Content *string
	Draft   *bool
	Publish *bool
	Archive *bool
}

// Apply writes the change set onto the post and revalidates.
func (c ChangeSet) Apply(p *Post, now time.Time) error {
	if c.Title != nil {
		p.Title = strings.TrimSpace(*c.Title)
	}
	if c.Content != nil {
		p.Content = *c.Content
	}
	if c.Draft != nil {
		p.Draft = *c.Draft
	}
	if c.Publish != nil {
		p.Publish = *c.Publish
	}
	if c.Archive != nil {
		p.Archive = *c.Archive
	}
	p.UpdatedAt = now
	return p.Validate()
}
