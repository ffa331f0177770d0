package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-be/internal/models"
	"recipe-be/internal/service"
)

// AttributeController serves the list and create endpoints of one attribute
// kind; the router mounts one instance for tags and one for ingredients
type AttributeController struct {
	attributeService service.AttributeService
}

func NewAttributeController(attributeService service.AttributeService) *AttributeController {
	return &AttributeController{
		attributeService: attributeService,
	}
}

// List handles GET /api/recipe/{tags,ingredients}
func (ac *AttributeController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	attrs, err := ac.attributeService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, attrs)
}

// Create handles POST /api/recipe/{tags,ingredients}
func (ac *AttributeController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	attr, err := ac.attributeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attr)
}
