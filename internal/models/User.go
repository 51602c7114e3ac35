package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Role     string `json:"role" gorm:"default:user"` // "user" or "admin"

	Reports []Report `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user holds the elevated role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
