package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an application user. Identity is established by the auth
// module; the wallet subsystem only reads user IDs and never creates users.
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	ProfileImage string    `json:"profile_image"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`

	Wallet Wallet `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
