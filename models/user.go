package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GroupAdministrator = "Administrator"
	GroupManager       = "Manager"
	GroupUser          = "User"
)

type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Status         bool      `json:"status" db:"status"`
	Group          string    `json:"group" db:"user_group"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	LastModifiedAt time.Time `json:"lastModifiedAt" db:"last_modified_at"`
}

// ValidGroup reports whether g is one of the three recognized groups.
func ValidGroup(g string) bool {
	return g == GroupAdministrator || g == GroupManager || g == GroupUser
}
