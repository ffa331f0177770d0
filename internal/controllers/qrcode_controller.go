package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"recipe-be/internal/service"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type QRCodeController struct {
	recipeService service.RecipeService
	baseURL       string
}

func NewQRCodeController(recipeService service.RecipeService, baseURL string) *QRCodeController {
	return &QRCodeController{
		recipeService: recipeService,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// GenerateQRCode handles GET /api/recipe/recipes/:id/qrcode. The code encodes
// the recipe's link, or the recipe's API URL when it has none.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minQRSize || parsed > maxQRSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid size",
				"details": fmt.Sprintf("size must be an integer between %d and %d", minQRSize, maxQRSize),
			})
			return
		}
		size = parsed
	}

	recipe, err := qc.recipeService.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	target := recipe.Link
	if target == "" {
		target = fmt.Sprintf("%s/api/recipe/recipes/%d", qc.baseURL, recipe.ID)
	}

	pngData, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		respondError(c, fmt.Errorf("failed to generate QR code: %w", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=recipe-%d.png", recipe.ID))
	c.Data(http.StatusOK, "image/png", pngData)
}
