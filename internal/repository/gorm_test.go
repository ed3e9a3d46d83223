package repository

import (
	"context"
	"testing"

	"userportal/internal/db"
	"userportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	conn, err := db.OpenDialector(sqlite.Open(":memory:"), true)
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every connection to :memory: is a separate database
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	return NewGormStore(conn)
}

func createUser(t *testing.T, s *GormStore, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	createUser(t, s, "alice")
	err := s.CreateUser(context.Background(), &domain.User{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	assert.ErrorIs(t, s.UpdateUsername(ctx, bob.ID, "alice"), ErrUsernameTaken)
	got, err := s.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	require.NoError(t, s.UpdateUsername(ctx, alice.ID, "alice"), "keeping your own name is not a conflict")
	require.NoError(t, s.UpdateUsername(ctx, bob.ID, "robert"))
	got, err = s.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "robert", got.Username)

	assert.ErrorIs(t, s.UpdateUsername(ctx, 9999, "ghost"), ErrNotFound)
}

func TestSetPhoneNumberCreatesProfileOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")

	p1, err := s.SetPhoneNumber(ctx, alice.ID, "555-0100")
	require.NoError(t, err)
	p2, err := s.SetPhoneNumber(ctx, alice.ID, "555-0199")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)

	detail, err := s.GetUserDetail(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Profile)
	assert.Equal(t, "555-0199", detail.Profile.PhoneNumber)
}

func TestAddressOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	addr := &domain.Address{UserID: alice.ID, Street: "1 Main St", City: "Porto", State: "Norte", Country: "PT", PostalCode: "4000"}
	require.NoError(t, s.CreateAddress(ctx, addr))

	city := "Braga"
	_, err := s.UpdateAddress(ctx, addr.ID, bob.ID, domain.AddressPatch{City: &city})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteAddress(ctx, addr.ID, bob.ID), ErrNotFound)

	bobs, err := s.ListAddresses(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	updated, err := s.UpdateAddress(ctx, addr.ID, alice.ID, domain.AddressPatch{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Braga", updated.City)
	assert.Equal(t, "1 Main St", updated.Street)
	assert.Equal(t, "Norte", updated.State)
	assert.Equal(t, "PT", updated.Country)
	assert.Equal(t, "4000", updated.PostalCode)

	require.NoError(t, s.DeleteAddress(ctx, addr.ID, alice.ID))
	assert.ErrorIs(t, s.DeleteAddress(ctx, addr.ID, alice.ID), ErrNotFound)
}

func TestFileOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	f := &domain.FileUpload{UserID: alice.ID, File: "uploads/a.txt", FileType: "txt"}
	require.NoError(t, s.CreateFile(ctx, f))
	assert.False(t, f.UploadDate.IsZero())

	_, err := s.GetFile(ctx, f.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteFile(ctx, f.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetFile(ctx, f.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/a.txt", got.File)

	deleted, err := s.DeleteFile(ctx, f.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, deleted.ID)
	files, err := s.ListFiles(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDashboardStatsTotalsAgree(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	createUser(t, s, "carol")

	for _, f := range []domain.FileUpload{
		{UserID: alice.ID, File: "uploads/1", FileType: "PDF"},
		{UserID: alice.ID, File: "uploads/2", FileType: "png"},
		{UserID: bob.ID, File: "uploads/3", FileType: "PDF"},
		{UserID: bob.ID, File: "uploads/4", FileType: ""},
	} {
		f := f
		require.NoError(t, s.CreateFile(ctx, &f))
	}

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalFiles)
	assert.Equal(t, map[string]int64{"PDF": 2, "png": 1, "": 1}, stats.FileTypes)
	assert.Equal(t, map[string]int64{"alice": 2, "bob": 2, "carol": 0}, stats.UsersFileCount)

	var byType, byUser int64
	for _, n := range stats.FileTypes {
		byType += n
	}
	for _, n := range stats.UsersFileCount {
		byUser += n
	}
	assert.Equal(t, stats.TotalFiles, byType)
	assert.Equal(t, stats.TotalFiles, byUser)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	require.NoError(t, s.CreateFile(ctx, &domain.FileUpload{UserID: alice.ID, File: "uploads/a", FileType: "txt"}))
	require.NoError(t, s.CreateFile(ctx, &domain.FileUpload{UserID: bob.ID, File: "uploads/b", FileType: "txt"}))
	require.NoError(t, s.CreateAddress(ctx, &domain.Address{UserID: alice.ID, Street: "s", City: "c", State: "st", Country: "co", PostalCode: "p"}))
	_, err := s.SetPhoneNumber(ctx, alice.ID, "123")
	require.NoError(t, err)

	refs, err := s.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/a"}, refs)

	files, err := s.ListFiles(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
	addresses, err := s.ListAddresses(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
	var profiles int64
	require.NoError(t, s.db.Model(&domain.Profile{}).Where("user_id = ?", alice.ID).Count(&profiles).Error)
	assert.Zero(t, profiles)

	bobFiles, err := s.ListFiles(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobFiles, 1)

	_, err = s.DeleteUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
