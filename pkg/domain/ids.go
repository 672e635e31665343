// Package domain defines typed identifiers shared across modules.
//
// IDs wrap uuid.UUID so the compiler rejects cross-entity assignment
// (a PostID can never be passed where a UserID is expected). Parse
// functions enforce the trust-boundary invariant: IDs must be valid,
// non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "inkwell/pkg/domain-errors"
)

type (
	// UserID identifies a user account.
	UserID uuid.UUID

	// PostID identifies a blog post.
	PostID uuid.UUID

	// EntryID identifies a transaction log entry.
	EntryID uuid.UUID
)

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewPostID returns a fresh random PostID.
func NewPostID() PostID { return PostID(uuid.New()) }

// NewEntryID returns a fresh random EntryID.
func NewEntryID() EntryID { return EntryID(uuid.New()) }

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id PostID) String() string { return uuid.UUID(id).String() }
func (id PostID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id EntryID) String() string { return uuid.UUID(id).String() }
func (id EntryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// ParseUserID parses and validates a user ID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parse(s)
	return UserID(u), err
}

// ParsePostID parses and validates a post ID from its string form.
func ParsePostID(s string) (PostID, error) {
	u, err := parse(s)
	return PostID(u), err
}

// ParseEntryID parses and validates an entry ID from its string form.
func ParseEntryID(s string) (EntryID, error) {
	u, err := parse(s)
	return EntryID(u), err
}

func parse(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "nil id")
	}
	return u, nil
}
