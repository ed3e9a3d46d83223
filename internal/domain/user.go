package domain

import "time" // Time for creation timestamps

// User Model
type User struct {
	ID        uint         `gorm:"primaryKey"`                    // Primary key
	Username  string       `gorm:"size:150;uniqueIndex;not null"` // Unique username
	Email     string       `gorm:"size:254"`                      // Optional email address
	Password  string       `gorm:"not null" json:"-"`             // Hashed password
	Role      string       `gorm:"size:20;default:user"`          // Role: user or admin
	CreatedAt time.Time    `gorm:"autoCreateTime"`                // Registration time
	Profile   *Profile     `gorm:"constraint:OnDelete:CASCADE;"`  // Zero-or-one profile
	Addresses []Address    `gorm:"constraint:OnDelete:CASCADE;"`  // Zero-or-many addresses
	Files     []FileUpload `gorm:"constraint:OnDelete:CASCADE;"`  // Zero-or-many uploaded files
}

// MaxUsernameLength bounds User.Username
const MaxUsernameLength = 150

// RoleAdmin marks accounts allowed through the admin-only middleware
const RoleAdmin = "admin"
