package database

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/backend/internal/models"
)

// Migrate runs the schema migration and seeds the fixed role catalog.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Recipe{},
		&models.Comment{},
	); err != nil {
		return err
	}
	return SeedRoles(db)
}

// SeedRoles inserts any missing role rows. Roles are immutable reference
// data; existing rows are left untouched.
func SeedRoles(db *gorm.DB) error {
	for _, name := range models.AllRoles {
		var role models.Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
		logrus.WithField("role", name).Info("seeded role")
	}
	return nil
}
