package repository

import (
	"context"
	"errors"
	"fmt"

	"userportal/internal/domain"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a GORM connection
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateUser(ctx context.Context, user *domain.User) error {
	db := s.db.WithContext(ctx)
	var taken int64
	if err := db.Model(&domain.User{}).Where("username = ?", user.Username).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return ErrUsernameTaken
	}
	err := db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetUserDetail loads a user together with its profile and addresses
func (s *GormStore) GetUserDetail(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateUsername renames a user. The unique index still guards the write if
// two renames race past the pre-check.
func (s *GormStore) UpdateUsername(ctx context.Context, id uint, username string) error {
	db := s.db.WithContext(ctx)
	var taken int64
	if err := db.Model(&domain.User{}).Where("username = ? AND id <> ?", username, id).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return ErrUsernameTaken
	}
	res := db.Model(&domain.User{}).Where("id = ?", id).Update("username", username)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows when the value is unchanged, so confirm the row exists.
		if _, err := s.GetUser(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser removes a user and every row it owns in one transaction. It
// returns the blob references of the deleted files so callers can release them.
func (s *GormStore) DeleteUser(ctx context.Context, id uint) ([]string, error) {
	var refs []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&domain.FileUpload{}).Where("user_id = ?", id).Pluck("file", &refs).Error; err != nil {
			return err
		}
		for _, model := range []any{&domain.FileUpload{}, &domain.Address{}, &domain.Profile{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// SetPhoneNumber get-or-creates the user's profile and overwrites its phone number
func (s *GormStore) SetPhoneNumber(ctx context.Context, userID uint, phone string) (*domain.Profile, error) {
	db := s.db.WithContext(ctx)
	var profile domain.Profile
	if err := db.Where(domain.Profile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	profile.PhoneNumber = phone
	if err := db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *GormStore) ListAddresses(ctx context.Context, userID uint) ([]domain.Address, error) {
	addresses := []domain.Address{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&addresses).Error
	return addresses, err
}

func (s *GormStore) CreateAddress(ctx context.Context, address *domain.Address) error {
	return s.db.WithContext(ctx).Create(address).Error
}

// UpdateAddress writes only the columns present in patch
func (s *GormStore) UpdateAddress(ctx context.Context, id, userID uint, patch domain.AddressPatch) (*domain.Address, error) {
	db := s.db.WithContext(ctx)
	var address domain.Address
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		return nil, notFound(err)
	}
	if cols := patch.Columns(); len(cols) > 0 {
		if err := db.Model(&address).Updates(cols).Error; err != nil {
			return nil, err
		}
		if err := db.First(&address, address.ID).Error; err != nil {
			return nil, notFound(err)
		}
	}
	return &address, nil
}

func (s *GormStore) DeleteAddress(ctx context.Context, id, userID uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListFiles(ctx context.Context, userID uint) ([]domain.FileUpload, error) {
	files := []domain.FileUpload{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&files).Error
	return files, err
}

func (s *GormStore) CreateFile(ctx context.Context, file *domain.FileUpload) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *GormStore) GetFile(ctx context.Context, id, userID uint) (*domain.FileUpload, error) {
	var file domain.FileUpload
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&file).Error; err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}

// DeleteFile removes the owner's file row and returns it
func (s *GormStore) DeleteFile(ctx context.Context, id, userID uint) (*domain.FileUpload, error) {
	file, err := s.GetFile(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.FileUpload{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return file, nil
}

// DashboardStats counts files across all users. Users without files are
// reported with a zero count.
func (s *GormStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &domain.DashboardStats{
		FileTypes:      map[string]int64{},
		UsersFileCount: map[string]int64{},
	}
	if err := db.Model(&domain.FileUpload{}).Count(&stats.TotalFiles).Error; err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}

	var types []struct {
		FileType string
		Count    int64
	}
	if err := db.Model(&domain.FileUpload{}).
		Select("file_type, COUNT(*) AS count").
		Group("file_type").
		Scan(&types).Error; err != nil {
		return nil, fmt.Errorf("count file types: %w", err)
	}
	for _, t := range types {
		stats.FileTypes[t.FileType] = t.Count
	}

	var users []struct {
		Username  string
		FileCount int64
	}
	if err := db.Model(&domain.User{}).
		Select("users.username, COUNT(file_uploads.id) AS file_count").
		Joins("LEFT JOIN file_uploads ON file_uploads.user_id = users.id").
		Group("users.id, users.username").
		Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("count files per user: %w", err)
	}
	for _, u := range users {
		stats.UsersFileCount[u.Username] = u.FileCount
	}
	return stats, nil
}
