// Package session holds the identity of the user signed in to the desk.
package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated is returned when an operation needs a signed-in user.
var ErrNotAuthenticated = errors.New("not signed in")

// Role identifies which dashboard and permissions a user gets.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleOrganisation Role = "ORGANISATION"
	RoleUser         Role = "USER"
)

// Roles returns the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleOrganisation, RoleUser}
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range Roles() {
		if r == candidate {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Label is the human readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleOrganisation:
		return "Organisation"
	case RoleUser:
		return "User"
	default:
		return string(r)
	}
}

// User is an authenticated account.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	Role         Role
	Organisation string
}

// Name prefers the display name and falls back to the username.
func (u User) Name() string {
	if strings.TrimSpace(u.DisplayName) != "" {
		return u.DisplayName
	}
	return u.Username
}

// Context holds at most one current user. It is owned by the UI loop and
// passed explicitly to every controller that needs it.
type Context struct {
	user *User
}

// New returns an empty, unauthenticated context.
func New() *Context {
	return &Context{}
}

// Current returns the signed-in user, if any.
func (c *Context) Current() (User, bool) {
	if c == nil || c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// Require returns the signed-in user or ErrNotAuthenticated.
func (c *Context) Require() (User, error) {
	u, ok := c.Current()
	if !ok {
		return User{}, ErrNotAuthenticated
	}
	return u, nil
}

// Set replaces the current user.
func (c *Context) Set(u User) {
	dup := u
	c.user = &dup
}

// Clear signs the current user out.
func (c *Context) Clear() {
	c.user = nil
}

// Authenticated reports whether a user is signed in.
func (c *Context) Authenticated() bool {
	_, ok := c.Current()
	return ok
}
