package models

import (
	"strings"
	"time"

	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
)

// MaxUsernameLength bounds usernames.
const MaxUsernameLength = 150

// User is an account in the directory. PasswordHash never leaves the
// service layer.
type User struct {
	ID           id.UserID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Superuser    bool
	PasswordHash string
	CreatedAt    time.Time
}

// Clone returns a copy so stores can hand out users without aliasing
// their internal state.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// CreateUserRequest carries the fields a superuser supplies when
// provisioning an account. The credential itself is generated, never
// caller-chosen.
type CreateUserRequest struct {
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Superuser  bool
	SendInvite bool
}

// Normalize trims whitespace from identity fields.
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// Validate enforces the field invariants.
func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if len(r.Username) > MaxUsernameLength {
		return dErrors.New(dErrors.CodeValidation, "username exceeds 150 characters")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "email is malformed")
	}
	return nil
}
