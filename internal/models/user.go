package models

import "gorm.io/gorm"

// User roles
const (
	RoleAdmin     = "ADMIN"
	RoleAnnotator = "ANNOTATOR"
)

// User is an authenticated principal. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"not null;default:ANNOTATOR"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
