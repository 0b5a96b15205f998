package repository

import (
	"testing"
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.ShiftTemplate{},
		&models.ShiftTemplateVersion{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestUserRepository_CreateWithShiftTemplate(t *testing.T) {
	db := setupUserRepoDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Username: "alice", PasswordHash: "hashedpassword"}
	template := &models.ShiftTemplate{Name: "aliceのシフト表"}
	version := &models.ShiftTemplateVersion{
		VersionNo:     1,
		EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.CreateWithShiftTemplate(user, template, version))

	require.Equal(t, user.ID, template.UserID)
	require.Equal(t, template.ID, version.ShiftTemplateID)
	require.Equal(t, user.ID, version.CreatedBy)

	var storedTemplate models.ShiftTemplate
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&storedTemplate).Error)

	var storedVersion models.ShiftTemplateVersion
	require.NoError(t, db.Where("shift_template_id = ?", storedTemplate.ID).First(&storedVersion).Error)
	require.Equal(t, 1, storedVersion.VersionNo)
}

func TestUserRepository_CreateWithShiftTemplate_RollsBackOnDuplicate(t *testing.T) {
	db := setupUserRepoDB(t)
	repo := NewUserRepository(db)

	first := &models.User{Username: "alice", PasswordHash: "hashedpassword"}
	require.NoError(t, repo.CreateWithShiftTemplate(
		first,
		&models.ShiftTemplate{Name: "aliceのシフト表"},
		&models.ShiftTemplateVersion{VersionNo: 1, EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	))

	// Same username violates the unique index; nothing new may survive
	err := repo.CreateWithShiftTemplate(
		&models.User{Username: "alice", PasswordHash: "hashedpassword"},
		&models.ShiftTemplate{Name: "duplicate"},
		&models.ShiftTemplateVersion{VersionNo: 1, EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	)
	require.ErrorIs(t, err, ErrCreateUser)

	var userCount, templateCount, versionCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.ShiftTemplate{}).Count(&templateCount)
	db.Model(&models.ShiftTemplateVersion{}).Count(&versionCount)
	require.EqualValues(t, 1, userCount)
	require.EqualValues(t, 1, templateCount)
	require.EqualValues(t, 1, versionCount)
}
