// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and small value types shared by the
// store, services and handlers: roles, image sections, event levels and the
// landing page defaults.
package model

// Role is a capability label attached to a user account.
type Role string

// Known roles. Only RoleAdmin may enter the admin area.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normalises a stored role string. Unknown values map to RoleUser
// so that they never grant admin access.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role grants access to the admin area.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
