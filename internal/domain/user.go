package domain

import "time"

// Roles a user can hold
const (
	RoleUser  = "user"  // Regular shopper
	RoleAdmin = "admin" // Catalogue and order administrator
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`                               // Primary key
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`            // Unique username
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`              // Unique email
	Password  string    `gorm:"column:hashed_password;not null" json:"-"`                // Salted bcrypt hash, never serialized
	Role      string    `gorm:"size:16;default:user" json:"role"`                        // Role: user or admin
	CreatedAt time.Time `json:"created_at"`                                              // Registration time
	Carts     []Cart    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`  // Carts owned by the user
	Orders    []Order   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Orders placed by the user
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the public view of a user returned by the auth endpoints
type UserSummary struct {
	ID       uint   `json:"user_id"`  // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email
}

// Summary returns the public view of the user
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
