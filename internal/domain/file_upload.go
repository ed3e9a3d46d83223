package domain

import (
	"strings"      // String manipulation
	"time"         // Upload timestamps
	"unicode/utf8" // Character counting
)

// MaxFileTypeLength bounds FileUpload.FileType
const MaxFileTypeLength = 50

// FileUpload Model
type FileUpload struct {
	ID          uint      `gorm:"primaryKey"`               // Primary key
	UserID      uint      `gorm:"index;not null"`           // Owner
	File        string    `gorm:"size:255;not null"`        // Blob reference (storage key)
	UploadDate  time.Time `gorm:"autoCreateTime;<-:create"` // Write-once upload time
	Description *string   `gorm:"type:text"`                // Optional description
	FileType    string    `gorm:"size:50;<-:create"`        // Derived from the filename, never updated
}

// DeriveFileType returns the text after the last "." of filename, verbatim.
// Names without a "." yield an empty string. Long suffixes are cut to
// MaxFileTypeLength characters, never inside a character.
func DeriveFileType(filename string) string {
	filename = strings.ToValidUTF8(filename, "")
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	ext := filename[i+1:]
	if utf8.RuneCountInString(ext) > MaxFileTypeLength {
		ext = string([]rune(ext)[:MaxFileTypeLength])
	}
	return ext
}

// DashboardStats aggregates file counts across every account
type DashboardStats struct {
	TotalFiles     int64            `json:"totalFiles"`     // Number of stored files
	FileTypes      map[string]int64 `json:"fileTypes"`      // file_type -> count
	UsersFileCount map[string]int64 `json:"usersFileCount"` // username -> count
}
