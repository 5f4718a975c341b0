package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkful/recipebook/backend/internal/database"
	"github.com/forkful/recipebook/backend/internal/models"
)

// SetupTestDB opens an in-memory sqlite database with the schema migrated
// and the role catalog seeded.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser persists a user holding the named roles, with the password
// bcrypt-hashed the way the auth service stores it.
func CreateUser(t *testing.T, db *gorm.DB, username, email, password string, roleNames ...string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	roles := make([]models.Role, 0, len(roleNames))
	for _, name := range roleNames {
		var role models.Role
		require.NoError(t, db.Where("name = ?", name).First(&role).Error)
		roles = append(roles, role)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Roles:        roles,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateRecipe persists a recipe owned by the given author.
func CreateRecipe(t *testing.T, db *gorm.DB, author *models.User, title, ingredients, keywords string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       title,
		Ingredients: ingredients,
		Keywords:    keywords,
		AuthorID:    author.ID,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
