package models

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("invalid role (use: admin, blogger, writer, vocalist)")

// Role identifies which dashboard a request is for
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBlogger  Role = "blogger"
	RoleWriter   Role = "writer"
	RoleVocalist Role = "vocalist"
)

// ParseRole parses a dashboard role from a path segment
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBlogger, RoleWriter, RoleVocalist:
		return true
	}
	return false
}

// RequiresUserID reports whether the role's content listing is scoped by a user id in the path
func (r Role) RequiresUserID() bool {
	return r == RoleWriter || r == RoleVocalist
}

// Claim returns the user-context role value (as set by the auth middleware) that owns this dashboard
func (r Role) Claim() string {
	return strings.ToUpper(string(r))
}
