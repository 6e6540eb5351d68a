package domain

import "errors"

var ErrRoleNotFound = errors.New("role not found")

// Well-known role names seeded at bootstrap. Role definitions are read-only
// at runtime; only membership changes.
const (
	RoleGuest   = "guest"
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// LevelAdmin is the minimum level required for administrative operations.
const LevelAdmin = 3

// Role is a named privilege rank. A higher level permits strictly more.
type Role struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SeedRoles is the canonical role catalog installed at first startup.
var SeedRoles = []Role{
	{Name: RoleGuest, Level: 0},
	{Name: RoleUser, Level: 1},
	{Name: RoleManager, Level: 2},
	{Name: RoleAdmin, Level: 3},
}
