package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// User is an administrative/editor account for the site back office.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	Role      UserRole  `json:"role" gorm:"default:editor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
