package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/backend/internal/models"
)

// WelcomeNotifier delivers the post-signup welcome notification. Delivery
// is best-effort; Signup never waits on it or fails because of it.
type WelcomeNotifier interface {
	NotifyWelcome(email, username string)
}

// AuthService handles signup and credential checks.
type AuthService struct {
	db       *gorm.DB
	notifier WelcomeNotifier
}

func NewAuthService(db *gorm.DB, notifier WelcomeNotifier) *AuthService {
	return &AuthService{db: db, notifier: notifier}
}

// Signup registers a new account. The role hint "chef" grants ROLE_CHEF;
// any other hint, or none, falls back to ROLE_USER.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, roleHints []string) (*models.User, error) {
	roleName := models.RoleUser
	for _, hint := range roleHints {
		if strings.EqualFold(hint, "chef") {
			roleName = models.RoleChef
		}
	}
	return s.register(ctx, username, email, password, roleName)
}

// SignupAdmin registers an account that always holds ROLE_ADMIN. The route
// itself is admin-gated.
func (s *AuthService) SignupAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.register(ctx, username, email, password, models.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, username, email, password, roleName string) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username is already taken", ErrConflict)
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email is already in use", ErrConflict)
	}

	var role models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("role %s not seeded: %w", roleName, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Roles:        []models.Role{role},
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     roleName,
	}).Info("user registered")

	if s.notifier != nil {
		s.notifier.NotifyWelcome(user.Email, user.Username)
	}
	return &user, nil
}

// Signin checks the credentials and returns the stored user with roles
// preloaded. Unknown username and wrong password are indistinguishable.
func (s *AuthService) Signin(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}
	return &user, nil
}
