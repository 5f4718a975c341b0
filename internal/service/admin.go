package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/backend/internal/models"
)

// AdminService handles user and role management. Every operation here is
// reachable only through admin-gated routes.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListUsers returns all users with roles preloaded. Password hashes never
// leave the model's json:"-" field.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Roles").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user together with their recipes, the comments on
// those recipes, and the comments they authored elsewhere. Deleting an
// absent id succeeds; the operation is idempotent by id.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs []uuid.UUID
		if err := tx.Model(&models.Recipe{}).Where("author_id = ?", id).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}
		if len(recipeIDs) > 0 {
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_roles WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return err
		}
		logrus.WithField("user_id", id).Info("user deleted")
		return nil
	})
}

// UpdateUser replaces the user's username, email and password. The
// password is rehashed before storage.
func (s *AdminService) UpdateUser(ctx context.Context, id uuid.UUID, username, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.PasswordHash = string(hashed)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserRole replaces the user's entire role set with the single named
// role.
func (s *AdminService) SetUserRole(ctx context.Context, id uuid.UUID, roleName string) error {
	name, err := NormalizeRoleName(roleName)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}

	var role models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: role not found", ErrNotFound)
		}
		return err
	}

	if err := s.db.WithContext(ctx).Model(&user).Association("Roles").Replace(&role); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": id,
		"role":    name,
	}).Info("user role set")
	return nil
}

// RemoveUserRole removes the named role from the user. Removing a role the
// user does not hold is a validation error, so repeated removals fail
// after the first.
func (s *AdminService) RemoveUserRole(ctx context.Context, id uuid.UUID, roleName string) error {
	name, err := NormalizeRoleName(roleName)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}

	var held *models.Role
	for i := range user.Roles {
		if user.Roles[i].Name == name {
			held = &user.Roles[i]
			break
		}
	}
	if held == nil {
		return fmt.Errorf("%w: user does not have the specified role", ErrValidation)
	}

	return s.db.WithContext(ctx).Model(&user).Association("Roles").Delete(held)
}

// NormalizeRoleName maps a client-supplied role name to its canonical
// form. "chef", "CHEF" and "ROLE_CHEF" all resolve to ROLE_CHEF; anything
// outside the fixed enumeration is a validation error.
func NormalizeRoleName(name string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n != "" && !strings.HasPrefix(n, "ROLE_") {
		n = "ROLE_" + n
	}
	for _, known := range models.AllRoles {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, name)
}
