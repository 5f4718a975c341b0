package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/backend/internal/cache"
	"github.com/forkful/recipebook/backend/internal/models"
)

const recipeCacheTTL = 10 * time.Minute

// RecipeService handles recipe and comment operations. Ownership rules
// live here: only the stored author may mutate a recipe, compared by id
// value against the authenticated caller.
type RecipeService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewRecipeService creates a RecipeService. rdb may be nil; the service
// then runs without the recipe-by-id cache.
func NewRecipeService(db *gorm.DB, rdb *redis.Client) *RecipeService {
	return &RecipeService{db: db, rdb: rdb}
}

// CreateRecipe creates a recipe authored by the caller. The author is
// always the authenticated identity, never a client-supplied id.
func (s *RecipeService) CreateRecipe(ctx context.Context, callerID uuid.UUID, title, ingredients, keywords string) (*models.Recipe, error) {
	if err := validateRecipeFields(title, ingredients, keywords); err != nil {
		return nil, err
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: author not found", ErrNotFound)
		}
		return nil, err
	}

	recipe := models.Recipe{
		Title:       strings.TrimSpace(title),
		Ingredients: strings.TrimSpace(ingredients),
		Keywords:    strings.TrimSpace(keywords),
		AuthorID:    author.ID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	recipe.Comments = []models.Comment{}

	logrus.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"author_id": recipe.AuthorID,
	}).Info("recipe created")
	return &recipe, nil
}

// ListRecipes returns every recipe with its comments.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Preload("Comments").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListRecipesByAuthor returns the recipes owned by the given author.
func (s *RecipeService) ListRecipesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Preload("Comments").Where("author_id = ?", authorID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns a recipe by id, going through the Redis cache when one
// is configured.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	if s.rdb != nil {
		var cached models.Recipe
		hit, err := cache.Get(ctx, s.rdb, recipeCacheKey(id), &cached)
		if err != nil {
			logrus.WithError(err).Warn("recipe cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Comments").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe not found", ErrNotFound)
		}
		return nil, err
	}

	if s.rdb != nil {
		if err := cache.Set(ctx, s.rdb, recipeCacheKey(id), &recipe, recipeCacheTTL); err != nil {
			logrus.WithError(err).Warn("recipe cache write failed")
		}
	}
	return &recipe, nil
}

// UpdateRecipe replaces the recipe's mutable fields. Ownership is checked
// against the stored author id, by value.
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID, id uuid.UUID, title, ingredients, keywords string) (*models.Recipe, error) {
	if err := validateRecipeFields(title, ingredients, keywords); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe not found", ErrNotFound)
		}
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, fmt.Errorf("%w: not allowed to modify this recipe", ErrForbidden)
	}

	updates := map[string]interface{}{
		"title":       strings.TrimSpace(title),
		"ingredients": strings.TrimSpace(ingredients),
		"keywords":    strings.TrimSpace(keywords),
	}
	if err := s.db.WithContext(ctx).Model(&recipe).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe and its comments in one transaction.
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: recipe not found", ErrNotFound)
		}
		return err
	}
	if recipe.AuthorID != callerID {
		return fmt.Errorf("%w: not allowed to delete this recipe", ErrForbidden)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	logrus.WithFields(logrus.Fields{
		"recipe_id": id,
		"author_id": callerID,
	}).Info("recipe deleted")
	return nil
}

// SearchRecipes matches the comma-separated terms against stored keywords
// with a case-insensitive substring match, OR across terms. No match is an
// empty list, not an error.
func (s *RecipeService) SearchRecipes(ctx context.Context, keywordQuery string) ([]models.Recipe, error) {
	terms := splitTerms(keywordQuery)
	if len(terms) == 0 {
		return []models.Recipe{}, nil
	}

	query := s.db.WithContext(ctx).Preload("Comments")
	conds := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms))
	for _, term := range terms {
		conds = append(conds, "LOWER(keywords) LIKE ?")
		args = append(args, "%"+strings.ToLower(term)+"%")
	}

	var recipes []models.Recipe
	if err := query.Where(strings.Join(conds, " OR "), args...).Find(&recipes).Error; err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, nil
}

// AddComment attaches a comment to the recipe. The author is the verified
// caller and the timestamp is set server-side on create.
func (s *RecipeService) AddComment(ctx context.Context, callerID, recipeID uuid.UUID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment content cannot be blank", ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: recipe not found", ErrNotFound)
	}

	comment := models.Comment{
		Text:     strings.TrimSpace(text),
		AuthorID: callerID,
		RecipeID: recipeID,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	s.invalidate(ctx, recipeID)
	return &comment, nil
}

func (s *RecipeService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := cache.Delete(ctx, s.rdb, recipeCacheKey(id)); err != nil {
		logrus.WithError(err).Warn("recipe cache invalidation failed")
	}
}

func recipeCacheKey(id uuid.UUID) string {
	return "recipe:" + id.String()
}

func validateRecipeFields(title, ingredients, keywords string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title cannot be blank", ErrValidation)
	}
	if strings.TrimSpace(ingredients) == "" {
		return fmt.Errorf("%w: ingredients cannot be blank", ErrValidation)
	}
	if strings.TrimSpace(keywords) == "" {
		return fmt.Errorf("%w: keywords cannot be blank", ErrValidation)
	}
	return nil
}

func splitTerms(q string) []string {
	parts := strings.Split(q, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
