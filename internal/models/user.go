package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleClient   = "client"
	RoleSupplier = "supplier"
	RoleMarketer = "marketer"
	RoleAdmin    = "admin"
)

// User exists to supply owner and admin identities and role claims.
// The wallet core never mutates users.
type User struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Phone    string `gorm:"uniqueIndex;not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:'client'"`
	Status   string `gorm:"default:'active'"`
}

// IsAdmin reports whether the user may validate or reject transactions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
