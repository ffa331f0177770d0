package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"recipe-be/internal/cache"
	"recipe-be/internal/entities"
	"recipe-be/internal/metrics"
	"recipe-be/internal/models"
	"recipe-be/internal/repository"
	"recipe-be/internal/storage"
)

//go:generate mockgen -source=recipe_service.go -destination=mocks/mock_recipe_service.go -package=mocks

// RecipeService defines the interface for recipe business logic. Every method
// acts only on recipes owned by userID.
type RecipeService interface {
	List(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.RecipeSummaryResponse, error)
	Get(ctx context.Context, userID, recipeID int64) (*models.RecipeDetailResponse, error)
	Create(ctx context.Context, userID int64, req *models.RecipeRequest) (*models.RecipeDetailResponse, error)
	UpdateFull(ctx context.Context, userID, recipeID int64, req *models.RecipeRequest) (*models.RecipeDetailResponse, error)
	UpdatePartial(ctx context.Context, userID, recipeID int64, req *models.RecipePatchRequest) (*models.RecipeDetailResponse, error)
	Delete(ctx context.Context, userID, recipeID int64) error
	UploadImage(ctx context.Context, userID, recipeID int64, data []byte) (*models.RecipeImageResponse, error)
}

// NUMERIC(5,2)
var maxPrice = decimal.New(1000, 0)

type recipeService struct {
	repo     repository.RecipeRepository
	images   storage.ImageStore
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewRecipeService creates a new recipe service. cacheClient may be nil, in
// which case every read goes to the database.
func NewRecipeService(repo repository.RecipeRepository, images storage.ImageStore, cacheClient cache.Cache, cacheTTL time.Duration, logger *zap.Logger) RecipeService {
	return &recipeService{
		repo:     repo,
		images:   images,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Cached details live under a per-recipe generation. A mutation bumps the
// generation, so a fill racing with it lands on a key no reader uses.
func recipeCacheKey(userID, recipeID, generation int64) string {
	return fmt.Sprintf("recipe:%d:%d:%d", userID, recipeID, generation)
}

func recipeGenerationKey(userID, recipeID int64) string {
	return fmt.Sprintf("recipe:gen:%d:%d", userID, recipeID)
}

// List returns the caller's recipes, newest first
func (s *recipeService) List(ctx context.Context, userID int64, filter models.RecipeFilter) ([]models.RecipeSummaryResponse, error) {
	recipes, err := s.repo.List(ctx, userID, repository.RecipeFilter{
		TagIDs:        filter.TagIDs,
		IngredientIDs: filter.IngredientIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	responses := make([]models.RecipeSummaryResponse, len(recipes))
	for i, recipe := range recipes {
		responses[i] = s.toSummary(recipe)
	}
	return responses, nil
}

// Get returns one recipe with nested tags and ingredients, from cache when possible
func (s *recipeService) Get(ctx context.Context, userID, recipeID int64) (*models.RecipeDetailResponse, error) {
	var key string
	if s.cache != nil {
		generation, err := s.generation(ctx, userID, recipeID)
		if err != nil {
			metrics.RecipeCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("recipe cache generation read failed", zap.Int64("recipe_id", recipeID), zap.Error(err))
		} else {
			key = recipeCacheKey(userID, recipeID, generation)
		}
	}

	if key != "" {
		var cached models.RecipeDetailResponse
		err := s.cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			metrics.RecipeCacheLookups.WithLabelValues("hit").Inc()
			return &cached, nil
		case errors.Is(err, cache.ErrCacheMiss):
			metrics.RecipeCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.RecipeCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("recipe cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	recipe, err := s.find(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	detail := s.toDetail(recipe)
	if key != "" {
		if err := s.cache.SetJSON(ctx, key, detail, s.cacheTTL); err != nil {
			s.logger.Warn("recipe cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return detail, nil
}

// generation returns the recipe's current cache generation, 0 if never bumped
func (s *recipeService) generation(ctx context.Context, userID, recipeID int64) (int64, error) {
	val, err := s.cache.Get(ctx, recipeGenerationKey(userID, recipeID))
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	generation, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed cache generation %q: %w", val, err)
	}
	return generation, nil
}

// Create stores a recipe owned by userID together with its associations
func (s *recipeService) Create(ctx context.Context, userID int64, req *models.RecipeRequest) (*models.RecipeDetailResponse, error) {
	recipe, err := recipeFromRequest(userID, req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, recipe, fullAssociations(req))
	if err != nil {
		return nil, s.writeError("create", err)
	}

	return s.toDetail(created), nil
}

// UpdateFull replaces every writable field. Omitted tags and ingredients
// clear their sets and an omitted link becomes empty.
func (s *recipeService) UpdateFull(ctx context.Context, userID, recipeID int64, req *models.RecipeRequest) (*models.RecipeDetailResponse, error) {
	recipe, err := recipeFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	recipe.ID = recipeID

	updated, err := s.repo.Update(ctx, recipe, fullAssociations(req))
	if err != nil {
		return nil, s.writeError("update", err)
	}

	s.invalidate(ctx, userID, recipeID)
	return s.toDetail(updated), nil
}

// UpdatePartial changes only the provided fields. A provided tags or
// ingredients list replaces the whole set; an absent one is left alone.
func (s *recipeService) UpdatePartial(ctx context.Context, userID, recipeID int64, req *models.RecipePatchRequest) (*models.RecipeDetailResponse, error) {
	recipe, err := s.find(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.TimeMinutes != nil {
		if err := validateTimeMinutes(*req.TimeMinutes); err != nil {
			return nil, err
		}
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	var assoc repository.Associations
	if req.Tags != nil {
		assoc.ReplaceTags = true
		assoc.TagIDs = *req.Tags
	}
	if req.Ingredients != nil {
		assoc.ReplaceIngredients = true
		assoc.IngredientIDs = *req.Ingredients
	}

	updated, err := s.repo.Update(ctx, recipe, assoc)
	if err != nil {
		return nil, s.writeError("update", err)
	}

	s.invalidate(ctx, userID, recipeID)
	return s.toDetail(updated), nil
}

// Delete removes the recipe and its stored image
func (s *recipeService) Delete(ctx context.Context, userID, recipeID int64) error {
	recipe, err := s.find(ctx, userID, recipeID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, recipeID); err != nil {
		return s.writeError("delete", err)
	}

	s.invalidate(ctx, userID, recipeID)
	if recipe.Image != nil {
		s.removeImage(*recipe.Image)
	}
	return nil
}

// UploadImage validates and stores data as the recipe's image, replacing
// (and deleting) any previous one
func (s *recipeService) UploadImage(ctx context.Context, userID, recipeID int64, data []byte) (*models.RecipeImageResponse, error) {
	if _, err := s.find(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	relPath, err := s.images.SaveRecipeImage(data)
	if errors.Is(err, storage.ErrInvalidImage) {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Field: "image", Message: storage.ErrInvalidImage.Error()}
	}
	if err != nil {
		metrics.ImageUploads.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	previous, err := s.repo.UpdateImage(ctx, userID, recipeID, relPath)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("failed").Inc()
		s.removeImage(relPath)
		return nil, s.writeError("update image of", err)
	}

	metrics.ImageUploads.WithLabelValues("stored").Inc()
	s.invalidate(ctx, userID, recipeID)
	if previous != nil && *previous != "" && *previous != relPath {
		s.removeImage(*previous)
	}

	return &models.RecipeImageResponse{
		ID:    recipeID,
		Image: s.images.URL(relPath),
	}, nil
}

func (s *recipeService) find(ctx context.Context, userID, recipeID int64) (*entities.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, userID, recipeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) writeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	var unknown *repository.UnknownAttributeError
	if errors.As(err, &unknown) {
		return unknownAttributes(unknown)
	}
	return fmt.Errorf("failed to %s recipe: %w", op, err)
}

func (s *recipeService) invalidate(ctx context.Context, userID, recipeID int64) {
	if s.cache == nil {
		return
	}
	// The generation must outlive every entry filled under the previous one
	key := recipeGenerationKey(userID, recipeID)
	if _, err := s.cache.Incr(ctx, key, 2*s.cacheTTL); err != nil {
		s.logger.Warn("recipe cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *recipeService) removeImage(relPath string) {
	if err := s.images.Remove(relPath); err != nil {
		s.logger.Warn("failed to remove recipe image", zap.String("path", relPath), zap.Error(err))
	}
}

func (s *recipeService) imageURL(image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	url := s.images.URL(*image)
	return &url
}

func (s *recipeService) toSummary(recipe *entities.Recipe) models.RecipeSummaryResponse {
	return models.RecipeSummaryResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Tags:        recipe.TagIDs(),
		Ingredients: recipe.IngredientIDs(),
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Image:       s.imageURL(recipe.Image),
	}
}

func (s *recipeService) toDetail(recipe *entities.Recipe) *models.RecipeDetailResponse {
	return &models.RecipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Tags:        toAttributeResponses(recipe.Tags),
		Ingredients: toAttributeResponses(recipe.Ingredients),
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Image:       s.imageURL(recipe.Image),
	}
}

func toAttributeResponses(attrs []entities.Attribute) []models.AttributeResponse {
	responses := make([]models.AttributeResponse, len(attrs))
	for i, attr := range attrs {
		responses[i] = models.AttributeResponse{ID: attr.ID, Name: attr.Name}
	}
	return responses
}

func recipeFromRequest(userID int64, req *models.RecipeRequest) (*entities.Recipe, error) {
	if req.TimeMinutes == nil {
		return nil, &ValidationError{Field: "time_minutes", Message: "this field is required"}
	}
	if req.Price == nil {
		return nil, &ValidationError{Field: "price", Message: "this field is required"}
	}
	if err := validateTimeMinutes(*req.TimeMinutes); err != nil {
		return nil, err
	}
	if err := validatePrice(*req.Price); err != nil {
		return nil, err
	}

	return &entities.Recipe{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
	}, nil
}

// fullAssociations makes both sets exactly what the request lists, so a
// missing list clears the set.
func fullAssociations(req *models.RecipeRequest) repository.Associations {
	return repository.Associations{
		TagIDs:             req.Tags,
		IngredientIDs:      req.Ingredients,
		ReplaceTags:        true,
		ReplaceIngredients: true,
	}
}

func validatePrice(price decimal.Decimal) error {
	if !price.Equal(price.Round(2)) {
		return &ValidationError{Field: "price", Message: "ensure that there are no more than 2 decimal places"}
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return &ValidationError{Field: "price", Message: "ensure that there are no more than 3 digits before the decimal point"}
	}
	return nil
}

func validateTimeMinutes(minutes int) error {
	if minutes < math.MinInt32 || minutes > math.MaxInt32 {
		return &ValidationError{Field: "time_minutes", Message: "ensure this value fits in a 32-bit integer"}
	}
	return nil
}
