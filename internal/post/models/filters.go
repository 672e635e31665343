package models

import (
	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
)

// Category names one of the three visibility flags for list filtering.
// The set is a closed allow-list: arbitrary field names must never reach
// a query, so each value maps to an explicit predicate.
type Category string

const (
	CategoryPublish Category = "publish"
	CategoryArchive Category = "archive"
	CategoryDraft   Category = "draft"
)

// ParseCategory validates a caller-supplied category value.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategoryPublish, CategoryArchive, CategoryDraft:
		return c, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown category: must be one of publish, archive, draft")
	}
}

// Matches reports whether the post's corresponding flag is set.
func (c Category) Matches(p *Post) bool {
	switch c {
	case CategoryPublish:
		return p.Publish
	case CategoryArchive:
		return p.Archive
	case CategoryDraft:
		return p.Draft
	default:
		return false
	}
}

// Filters narrows a post listing as supplied by the caller. Zero values
// mean "no restriction"; all present filters AND-compose. Category is
// kept raw here so the access layer owns its validation.
type Filters struct {
	Username string
	Category string
}

// ListScope is the store-level query shape after the service has
// resolved usernames and visibility rules into concrete constraints.
type ListScope struct {
	OwnerID   *id.UserID
	Category  *Category
	Published bool
}
