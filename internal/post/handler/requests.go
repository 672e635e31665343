package handler

import (
	"time"

	"inkwell/internal/post/models"
	dErrors "inkwell/pkg/domain-errors"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// replacePostRequest is a full replacement. Title and content are
// mandatory; omitted booleans fall back to the new-post defaults, so a
// PUT without flags resets the post to an unpublished draft.
type replacePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Draft   *bool   `json:"draft"`
	Publish *bool   `json:"publish"`
	Archive *bool   `json:"archive"`
}

func (r replacePostRequest) toChangeSet() (models.ChangeSet, error) {
	if r.Title == nil {
		return models.ChangeSet{}, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Content == nil {
		return models.ChangeSet{}, dErrors.New(dErrors.CodeValidation, "content is required")
	}
	draft, publish, archive := true, false, false
	if r.Draft != nil {
		draft = *r.Draft
	}
	if r.Publish != nil {
		publish = *r.Publish
	}
	if r.Archive != nil {
		archive = *r.Archive
	}
	return models.ChangeSet{
		Title:   r.Title,
		Content: r.Content,
		Draft:   &draft,
		Publish: &publish,
		Archive: &archive,
	}, nil
}

// patchPostRequest updates only the fields present in the body.
type patchPostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Draft   *bool   `json:"draft"`
	Publish *bool   `json:"publish"`
	Archive *bool   `json:"archive"`
}

func (r patchPostRequest) toChangeSet() models.ChangeSet {
	return models.ChangeSet{
		Title:   r.Title,
		Content: r.Content,
		Draft:   r.Draft,
		Publish: r.Publish,
		Archive: r.Archive,
	}
}

type archiveRequest struct {
	Archive *bool `json:"archive"`
}

type postResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Draft     bool   `json:"draft"`
	Publish   bool   `json:"publish"`
	Archive   bool   `json:"archive"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID.String(),
		UserID:    p.OwnerID.String(),
		Title:     p.Title,
		Content:   p.Content,
		Draft:     p.Draft,
		Publish:   p.Publish,
		Archive:   p.Archive,
		CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func toPostResponses(posts []*models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

// publicPostResponse hides the workflow flags from anonymous readers.
type publicPostResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPublicPostResponse(p *models.Post) publicPostResponse {
	return publicPostResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func toPublicPostResponses(posts []*models.Post) []publicPostResponse {
	out := make([]publicPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPublicPostResponse(p))
	}
	return out
}
