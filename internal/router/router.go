package router

import (
	"github.com/gin-gonic/gin"

	"github.com/forkful/recipebook/backend/internal/api"
	"github.com/forkful/recipebook/backend/internal/middleware"
	"github.com/forkful/recipebook/backend/internal/models"
)

// Setup configures the application routes. Required-role sets are declared
// here, per operation, as explicit guard parameters.
func Setup(
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	recipeHandler *api.RecipeHandler,
	adminHandler *api.AdminHandler,
	verifier middleware.TokenVerifier,
	cookieName string,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	authn := middleware.Authenticate(verifier, cookieName)

	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signup/admin", authn, middleware.RequireRoles(models.RoleAdmin), authHandler.SignupAdmin)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/signout", authHandler.Signout)
	}

	user := router.Group("/api/user")
	user.Use(authn)
	{
		user.GET("/profile", middleware.RequireRoles(models.RoleUser, models.RoleChef, models.RoleAdmin), userHandler.GetProfile)
	}

	recipe := router.Group("/api/recipe")
	{
		recipe.GET("", recipeHandler.ListRecipes)
		recipe.GET("/search", recipeHandler.SearchRecipes)
		recipe.GET("/chef", authn, middleware.RequireRoles(models.RoleChef), recipeHandler.ListOwnRecipes)
		recipe.GET("/:id", recipeHandler.GetRecipe)
		recipe.POST("", authn, middleware.RequireRoles(models.RoleChef), recipeHandler.CreateRecipe)
		recipe.PUT("", authn, middleware.RequireRoles(models.RoleChef), recipeHandler.UpdateRecipe)
		recipe.DELETE("/:id", authn, middleware.RequireRoles(models.RoleChef), recipeHandler.DeleteRecipe)
		recipe.POST("/:id/comments", authn, middleware.RequireRoles(models.RoleUser, models.RoleChef), recipeHandler.AddComment)
	}

	admin := router.Group("/api/admin")
	admin.Use(authn, middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.PUT("/:userId/role", adminHandler.SetUserRole)
		admin.DELETE("/:userId/role", adminHandler.RemoveUserRole)
	}

	return router
}
