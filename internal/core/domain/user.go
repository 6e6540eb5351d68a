package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already registered")
var ErrEmailTaken = errors.New("email already registered")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidCredentials = errors.New("incorrect username or password")

// User models an account known to the system. Roles is the live, hydrated
// role set owned by the user; it is always loaded alongside the user because
// authorization decisions depend on it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	Roles        []Role    `json:"roles"`
}

// MaxRoleLevel returns the highest privilege level among the user's roles,
// or 0 when the user holds no roles at all.
func (u *User) MaxRoleLevel() int {
	max := 0
	for _, r := range u.Roles {
		if r.Level > max {
			max = r.Level
		}
	}
	return max
}

// RoleNames returns the names of the user's roles in assignment order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
