// Package repository persists portal records. Every per-record lookup that
// takes an owner id is scoped to that owner: a record owned by someone else
// is reported as ErrNotFound.
package repository

import (
	"context"
	"errors"

	"userportal/internal/domain"
)

var (
	// ErrNotFound is returned when a record is absent or not owned by the caller
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when another account already holds a username
	ErrUsernameTaken = errors.New("username already taken")
)

// Store is the persistence surface the HTTP handlers depend on
type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserDetail(ctx context.Context, id uint) (*domain.User, error)
	UpdateUsername(ctx context.Context, id uint, username string) error
	DeleteUser(ctx context.Context, id uint) ([]string, error)

	SetPhoneNumber(ctx context.Context, userID uint, phone string) (*domain.Profile, error)

	ListAddresses(ctx context.Context, userID uint) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address *domain.Address) error
	UpdateAddress(ctx context.Context, id, userID uint, patch domain.AddressPatch) (*domain.Address, error)
	DeleteAddress(ctx context.Context, id, userID uint) error

	ListFiles(ctx context.Context, userID uint) ([]domain.FileUpload, error)
	CreateFile(ctx context.Context, file *domain.FileUpload) error
	GetFile(ctx context.Context, id, userID uint) (*domain.FileUpload, error)
	DeleteFile(ctx context.Context, id, userID uint) (*domain.FileUpload, error)

	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
