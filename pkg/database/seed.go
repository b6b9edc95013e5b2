package database

import (
	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/service"
	"gorm.io/gorm"
)

// DefaultAdmin defines the bootstrap administrator credentials
type DefaultAdmin struct {
	Name     string
	Email    string
	Password string
}

// GetDefaultAdmin returns the default admin user
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		Name:     "System Administrator",
		Email:    "admin@incidentline.local",
		Password: "ChangeMe!2024", // Change this in production!
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the default admin user if not exists
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existing model.User
	result := db.Where("email = ?", admin.Email).First(&existing)
	if result.Error == nil {
		return nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hash, err := service.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	user := model.User{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: hash,
		SystemRole:   constants.SystemRoleGlobalAdmin,
	}

	return db.Create(&user).Error
}
