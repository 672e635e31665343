// Package translog models the append-only audit trail of post mutations.
//
// Entries are written in the same database transaction as the mutation
// they describe and are never updated or deleted by application flow.
// References to the acting user and the affected post may dangle to nil
// when those rows are later deleted; the trail itself survives them.
package translog

import (
	"time"

	id "inkwell/pkg/domain"
)

// Action labels what was done to a post.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Entry is one immutable audit record.
type Entry struct {
	ID         id.EntryID
	UserID     *id.UserID
	PostID     *id.PostID
	Action     Action
	OccurredAt time.Time
}

// NewEntry builds an entry for an acting user and affected post. The
// timestamp is set by the caller from the request clock, never supplied
// by external input.
func NewEntry(userID id.UserID, postID id.PostID, action Action, occurredAt time.Time) Entry {
	return Entry{
		ID:         id.NewEntryID(),
		UserID:     &userID,
		PostID:     &postID,
		Action:     action,
		OccurredAt: occurredAt,
	}
}
