package domain

import "time"

// Role is the authorization level of a user. The admin flag in storage
// maps onto an explicit role enumeration so authorization checks are
// "at least" comparisons rather than equality against a boolean.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// HasAtLeast reports whether r grants the privileges of required.
func (r Role) HasAtLeast(required Role) bool {
	return r >= required
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// RoleFromAdminFlag converts the stored admin flag to a Role.
func RoleFromAdminFlag(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User is the domain model for accounts that submit issues.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role returns the user's authorization role.
func (u *User) Role() Role {
	return RoleFromAdminFlag(u.IsAdmin)
}
