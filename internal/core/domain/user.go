package domain

import (
	"errors"
	"time"
)

// Role names form a closed catalog. Registration never creates roles, it
// only resolves requested names against the seeded reference data.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrUsernameTaken = errors.New("username is already taken")
var ErrEmailTaken = errors.New("email is already in use")
var ErrRoleNotFound = errors.New("role is not found")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// Role is a named permission grouping from the catalog.
type Role struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// User is the core aggregate root. ID is assigned by the store at
// registration and is never reassigned afterwards.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the user's role names in stored order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
