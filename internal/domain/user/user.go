// Package user holds the minimal identity model the booking engine needs:
// who owns a booking and whether the caller may administer inventory.
// Full identity management lives outside this service.
package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGuest, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}
