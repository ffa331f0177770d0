package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-be/internal/models"
	"recipe-be/internal/service"
)

type RecipeController struct {
	recipeService  service.RecipeService
	maxUploadBytes int64
}

func NewRecipeController(recipeService service.RecipeService, maxUploadBytes int64) *RecipeController {
	return &RecipeController{
		recipeService:  recipeService,
		maxUploadBytes: maxUploadBytes,
	}
}

// List handles GET /api/recipe/recipes?tags=1,2&ingredients=3
func (rc *RecipeController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid tags filter",
			"details": "expected a comma-separated list of integer IDs",
		})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ingredients filter",
			"details": "expected a comma-separated list of integer IDs",
		})
		return
	}

	recipes, err := rc.recipeService.List(c.Request.Context(), userID, models.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// Create handles POST /api/recipe/recipes
func (rc *RecipeController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := rc.recipeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// Get handles GET /api/recipe/recipes/:id
func (rc *RecipeController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := rc.recipeService.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Update handles PUT /api/recipe/recipes/:id
func (rc *RecipeController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := rc.recipeService.UpdateFull(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Patch handles PATCH /api/recipe/recipes/:id
func (rc *RecipeController) Patch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req models.RecipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := rc.recipeService.UpdatePartial(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Delete handles DELETE /api/recipe/recipes/:id
func (rc *RecipeController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := rc.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /api/recipe/recipes/:id/upload-image (multipart field "image")
func (rc *RecipeController) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rc.maxUploadBytes)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Upload too large",
				"details": fmt.Sprintf("uploads are limited to %d bytes", rc.maxUploadBytes),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": "image: no file was submitted",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	response, err := rc.recipeService.UploadImage(c.Request.Context(), userID, recipeID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
