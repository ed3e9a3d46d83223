package domain

// Profile Model
type Profile struct {
	ID          uint   `gorm:"primaryKey"`           // Primary key
	UserID      uint   `gorm:"uniqueIndex;not null"` // One-to-one link to User
	PhoneNumber string `gorm:"size:15"`              // May be empty until first update
}

// MaxPhoneNumberLength bounds Profile.PhoneNumber
const MaxPhoneNumberLength = 15
