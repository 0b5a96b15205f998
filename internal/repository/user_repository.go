package repository

import (
	"errors"
	"fmt"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateTemplate is returned when creating the shift template fails inside the signup transaction.
	ErrCreateTemplate = errors.New("user repository: create shift template failed")
	// ErrCreateTemplateVersion is returned when creating the first template version fails inside the signup transaction.
	ErrCreateTemplateVersion = errors.New("user repository: create template version failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithShiftTemplate creates a user, their shift template, and the
// template's first version atomically. Every account owns a template from the
// moment it exists, so shift type creation never has to lazily provision one.
func (r *GormUserRepository) CreateWithShiftTemplate(user *models.User, template *models.ShiftTemplate, version *models.ShiftTemplateVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		template.UserID = user.ID

		if err := tx.Create(template).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTemplate, err)
		}

		version.ShiftTemplateID = template.ID
		version.CreatedBy = user.ID

		if err := tx.Create(version).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTemplateVersion, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
