package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkful/recipebook/backend/internal/middleware"
	"github.com/forkful/recipebook/backend/internal/service"
	"github.com/forkful/recipebook/backend/internal/types"
)

// RecipeHandler serves recipe and comment endpoints. Reads are public;
// mutations go through the role guard in the router and the ownership
// checks in the service.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.MessageResponse{Message: "authentication required"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), principal.UserID, req.Title, req.Ingredients, req.Keywords)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// ListOwnRecipes returns only the recipes the calling chef authored.
func (h *RecipeHandler) ListOwnRecipes(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.MessageResponse{Message: "authentication required"})
		return
	}

	recipes, err := h.recipes.ListRecipesByAuthor(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.MessageResponse{Message: "authentication required"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), principal.UserID, req.ID, req.Title, req.Ingredients, req.Keywords)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.MessageResponse{Message: "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), principal.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchRecipes matches ?keywords=a,b against stored keywords. No match
// is an empty list, not an error.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), c.Query("keywords"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.MessageResponse{Message: "authentication required"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid recipe id"})
		return
	}

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	comment, err := h.recipes.AddComment(c.Request.Context(), principal.UserID, recipeID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
