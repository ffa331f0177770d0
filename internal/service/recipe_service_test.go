package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"recipe-be/internal/cache"
	cachemocks "recipe-be/internal/cache/mocks"
	"recipe-be/internal/entities"
	"recipe-be/internal/models"
	"recipe-be/internal/repository"
	"recipe-be/internal/repository/mocks"
	"recipe-be/internal/service"
	"recipe-be/internal/storage"
	storagemocks "recipe-be/internal/storage/mocks"
)

type recipeFixture struct {
	svc    service.RecipeService
	repo   *mocks.MockRecipeRepository
	images *storagemocks.MockImageStore
	cache  *cachemocks.MockCache
}

func newRecipeFixture(t *testing.T, withCache bool) *recipeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &recipeFixture{
		repo:   mocks.NewMockRecipeRepository(ctrl),
		images: storagemocks.NewMockImageStore(ctrl),
	}

	var c cache.Cache
	if withCache {
		f.cache = cachemocks.NewMockCache(ctrl)
		c = f.cache
	}
	f.svc = service.NewRecipeService(f.repo, f.images, c, 10*time.Minute, zap.NewNop())
	return f
}

func sampleRecipe() *entities.Recipe {
	return &entities.Recipe{
		ID:          4,
		UserID:      1,
		Title:       "Sample recipe",
		TimeMinutes: 22,
		Price:       decimal.RequireFromString("5.25"),
		Link:        "http://example.com/recipe.pdf",
		Tags:        []entities.Attribute{{ID: 1, UserID: 1, Name: "Thai"}, {ID: 3, UserID: 1, Name: "Dinner"}},
		Ingredients: []entities.Attribute{{ID: 8, UserID: 1, Name: "Prawns"}},
	}
}

func ptr[T any](v T) *T { return &v }

func TestRecipeServiceCreate(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), repository.Associations{
		TagIDs:             []int64{1, 3},
		IngredientIDs:      []int64{8},
		ReplaceTags:        true,
		ReplaceIngredients: true,
	}).DoAndReturn(func(_ context.Context, r *entities.Recipe, _ repository.Associations) (*entities.Recipe, error) {
		assert.Equal(t, int64(1), r.UserID)
		assert.Equal(t, "Sample recipe", r.Title)
		assert.Equal(t, 22, r.TimeMinutes)
		assert.True(t, r.Price.Equal(decimal.RequireFromString("5.25")))
		return sampleRecipe(), nil
	})

	got, err := f.svc.Create(context.Background(), 1, &models.RecipeRequest{
		Title:       " Sample recipe ",
		TimeMinutes: ptr(22),
		Price:       ptr(decimal.RequireFromString("5.25")),
		Link:        "http://example.com/recipe.pdf",
		Tags:        []int64{1, 3},
		Ingredients: []int64{8},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, "5.25", got.Price)
	assert.Equal(t, []models.AttributeResponse{{ID: 1, Name: "Thai"}, {ID: 3, Name: "Dinner"}}, got.Tags)
	assert.Equal(t, []models.AttributeResponse{{ID: 8, Name: "Prawns"}}, got.Ingredients)
	assert.Nil(t, got.Image)
}

func TestRecipeServiceCreateUnknownTag(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &repository.UnknownAttributeError{Kind: entities.KindTag, IDs: []int64{99}})

	_, err := f.svc.Create(context.Background(), 1, &models.RecipeRequest{
		Title:       "Sample recipe",
		TimeMinutes: ptr(5),
		Price:       ptr(decimal.RequireFromString("5")),
		Tags:        []int64{99},
	})

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "tags", verr.Field)
}

func TestRecipeServiceCreateUnknownIngredient(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("tx: %w", &repository.UnknownAttributeError{Kind: entities.KindIngredient, IDs: []int64{7}}))

	_, err := f.svc.Create(context.Background(), 1, &models.RecipeRequest{
		Title:       "Sample recipe",
		TimeMinutes: ptr(5),
		Price:       ptr(decimal.RequireFromString("5")),
		Ingredients: []int64{7},
	})

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ingredients", verr.Field)
}

func TestRecipeServiceCreateRejectsPrice(t *testing.T) {
	for _, price := range []string{"5.125", "1000", "-1000.00", "12345.6"} {
		t.Run(price, func(t *testing.T) {
			f := newRecipeFixture(t, false)

			_, err := f.svc.Create(context.Background(), 1, &models.RecipeRequest{
				Title:       "Sample recipe",
				TimeMinutes: ptr(5),
				Price:       ptr(decimal.RequireFromString(price)),
			})

			var verr *service.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "price", verr.Field)
		})
	}
}

func TestRecipeServiceCreateAcceptsTrailingZeros(t *testing.T) {
	f := newRecipeFixture(t, false)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleRecipe(), nil)

	_, err := f.svc.Create(context.Background(), 1, &models.RecipeRequest{
		Title:       "Sample recipe",
		TimeMinutes: ptr(5),
		Price:       ptr(decimal.RequireFromString("999.990")),
	})
	assert.NoError(t, err)
}

func TestRecipeServiceList(t *testing.T) {
	f := newRecipeFixture(t, false)

	withImage := sampleRecipe()
	withImage.ID = 5
	withImage.Image = ptr("uploads/recipe/abc.jpg")

	f.repo.EXPECT().List(gomock.Any(), int64(1), repository.RecipeFilter{TagIDs: []int64{1}}).
		Return([]*entities.Recipe{withImage, sampleRecipe()}, nil)
	f.images.EXPECT().URL("uploads/recipe/abc.jpg").Return("/media/uploads/recipe/abc.jpg")

	got, err := f.svc.List(context.Background(), 1, models.RecipeFilter{TagIDs: []int64{1}})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, []int64{1, 3}, got[0].Tags)
	assert.Equal(t, []int64{8}, got[0].Ingredients)
	require.NotNil(t, got[0].Image)
	assert.Equal(t, "/media/uploads/recipe/abc.jpg", *got[0].Image)
	assert.Nil(t, got[1].Image)
}

func TestRecipeServiceGetNotFound(t *testing.T) {
	f := newRecipeFixture(t, false)
	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(42)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Get(context.Background(), 1, 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRecipeServiceGetCacheHit(t *testing.T) {
	f := newRecipeFixture(t, true)
	cached := models.RecipeDetailResponse{ID: 4, Title: "Cached", Price: "1.00"}

	f.cache.EXPECT().Get(gomock.Any(), "recipe:gen:1:4").Return("3", nil)
	f.cache.EXPECT().GetJSON(gomock.Any(), "recipe:1:4:3", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, dest any) error {
			*dest.(*models.RecipeDetailResponse) = cached
			return nil
		})

	got, err := f.svc.Get(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Title)
}

func TestRecipeServiceGetCacheMiss(t *testing.T) {
	f := newRecipeFixture(t, true)

	gomock.InOrder(
		f.cache.EXPECT().Get(gomock.Any(), "recipe:gen:1:4").Return("", cache.ErrCacheMiss),
		f.cache.EXPECT().GetJSON(gomock.Any(), "recipe:1:4:0", gomock.Any()).Return(cache.ErrCacheMiss),
		f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil),
		f.cache.EXPECT().SetJSON(gomock.Any(), "recipe:1:4:0", gomock.Any(), 10*time.Minute).Return(nil),
	)

	got, err := f.svc.Get(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Sample recipe", got.Title)
	assert.Equal(t, "5.25", got.Price)
}

func TestRecipeServiceGetCacheErrorFallsBack(t *testing.T) {
	f := newRecipeFixture(t, true)

	f.cache.EXPECT().Get(gomock.Any(), "recipe:gen:1:4").Return("1", nil)
	f.cache.EXPECT().GetJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)
	f.cache.EXPECT().SetJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	got, err := f.svc.Get(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
}

func TestRecipeServiceGetSkipsCacheWithoutGeneration(t *testing.T) {
	f := newRecipeFixture(t, true)

	// No GetJSON or SetJSON: without a generation there is no safe key.
	f.cache.EXPECT().Get(gomock.Any(), "recipe:gen:1:4").Return("", errors.New("connection refused"))
	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)

	got, err := f.svc.Get(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Sample recipe", got.Title)
}

func TestRecipeServiceGetRacingUpdateDoesNotCacheStaleRecipe(t *testing.T) {
	f := newRecipeFixture(t, false)
	svc := service.NewRecipeService(f.repo, f.images, newMemCache(), 10*time.Minute, zap.NewNop())
	ctx := context.Background()

	stale := sampleRecipe()
	fresh := sampleRecipe()
	fresh.Title = "Fresh title"

	update := &models.RecipeRequest{
		Title:       "Fresh title",
		TimeMinutes: ptr(22),
		Price:       ptr(decimal.RequireFromString("5.25")),
	}

	// The first read returns the row as it was, and the update commits and
	// invalidates before that read fills the cache.
	gomock.InOrder(
		f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).DoAndReturn(
			func(context.Context, int64, int64) (*entities.Recipe, error) {
				_, err := svc.UpdateFull(ctx, 1, 4, update)
				require.NoError(t, err)
				return stale, nil
			}),
		f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(fresh, nil),
	)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(fresh, nil)

	got, err := svc.Get(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Sample recipe", got.Title)

	got, err = svc.Get(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Fresh title", got.Title)

	// And the fresh copy is what gets served from cache afterwards.
	got, err = svc.Get(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Fresh title", got.Title)
}

func TestRecipeServiceUpdatePartialKeepsOmittedAssociations(t *testing.T) {
	f := newRecipeFixture(t, true)

	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), repository.Associations{}).DoAndReturn(
		func(_ context.Context, r *entities.Recipe, _ repository.Associations) (*entities.Recipe, error) {
			assert.Equal(t, "New title", r.Title)
			assert.Equal(t, 22, r.TimeMinutes)
			assert.Equal(t, "http://example.com/recipe.pdf", r.Link)
			r.Title = "New title"
			return r, nil
		})
	f.cache.EXPECT().Incr(gomock.Any(), "recipe:gen:1:4", 20*time.Minute).Return(int64(1), nil)

	got, err := f.svc.UpdatePartial(context.Background(), 1, 4, &models.RecipePatchRequest{Title: ptr("New title")})
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Len(t, got.Tags, 2)
}

func TestRecipeServiceUpdatePartialReplacesProvidedAssociations(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), repository.Associations{
		TagIDs:      []int64{},
		ReplaceTags: true,
	}).Return(sampleRecipe(), nil)

	_, err := f.svc.UpdatePartial(context.Background(), 1, 4, &models.RecipePatchRequest{Tags: &[]int64{}})
	require.NoError(t, err)
}

func TestRecipeServiceUpdatePartialNotFound(t *testing.T) {
	f := newRecipeFixture(t, false)
	f.repo.EXPECT().FindByID(gomock.Any(), int64(2), int64(4)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.UpdatePartial(context.Background(), 2, 4, &models.RecipePatchRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRecipeServiceUpdateFullClearsOmitted(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), repository.Associations{
		ReplaceTags:        true,
		ReplaceIngredients: true,
	}).DoAndReturn(func(_ context.Context, r *entities.Recipe, _ repository.Associations) (*entities.Recipe, error) {
		assert.Equal(t, int64(4), r.ID)
		assert.Equal(t, int64(1), r.UserID)
		assert.Equal(t, "", r.Link)
		return r, nil
	})

	got, err := f.svc.UpdateFull(context.Background(), 1, 4, &models.RecipeRequest{
		Title:       "New recipe title",
		TimeMinutes: ptr(10),
		Price:       ptr(decimal.RequireFromString("2.50")),
	})
	require.NoError(t, err)
	assert.Equal(t, "2.50", got.Price)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.Ingredients)
}

func TestRecipeServiceUpdateFullNotFound(t *testing.T) {
	f := newRecipeFixture(t, false)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, repository.ErrNotFound)

	_, err := f.svc.UpdateFull(context.Background(), 1, 4, &models.RecipeRequest{
		Title:       "New recipe title",
		TimeMinutes: ptr(10),
		Price:       ptr(decimal.RequireFromString("2.50")),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRecipeServiceDelete(t *testing.T) {
	f := newRecipeFixture(t, true)
	recipe := sampleRecipe()
	recipe.Image = ptr("uploads/recipe/old.png")

	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(recipe, nil)
	f.repo.EXPECT().Delete(gomock.Any(), int64(1), int64(4)).Return(nil)
	f.cache.EXPECT().Incr(gomock.Any(), "recipe:gen:1:4", 20*time.Minute).Return(int64(1), nil)
	f.images.EXPECT().Remove("uploads/recipe/old.png").Return(nil)

	assert.NoError(t, f.svc.Delete(context.Background(), 1, 4))
}

func TestRecipeServiceDeleteNotFound(t *testing.T) {
	f := newRecipeFixture(t, false)
	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(nil, repository.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), 1, 4), service.ErrNotFound)
}

func TestRecipeServiceUploadImage(t *testing.T) {
	f := newRecipeFixture(t, true)
	data := []byte("image bytes")

	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)
	f.images.EXPECT().SaveRecipeImage(data).Return("uploads/recipe/new.jpg", nil)
	f.repo.EXPECT().UpdateImage(gomock.Any(), int64(1), int64(4), "uploads/recipe/new.jpg").
		Return(ptr("uploads/recipe/old.jpg"), nil)
	f.cache.EXPECT().Incr(gomock.Any(), "recipe:gen:1:4", 20*time.Minute).Return(int64(1), nil)
	f.images.EXPECT().Remove("uploads/recipe/old.jpg").Return(nil)
	f.images.EXPECT().URL("uploads/recipe/new.jpg").Return("/media/uploads/recipe/new.jpg")

	got, err := f.svc.UploadImage(context.Background(), 1, 4, data)
	require.NoError(t, err)
	assert.Equal(t, &models.RecipeImageResponse{ID: 4, Image: "/media/uploads/recipe/new.jpg"}, got)
}

func TestRecipeServiceUploadImageInvalid(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)
	f.images.EXPECT().SaveRecipeImage(gomock.Any()).
		Return("", fmt.Errorf("%w: detected text/plain", storage.ErrInvalidImage))

	_, err := f.svc.UploadImage(context.Background(), 1, 4, []byte("notimage"))

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "image", verr.Field)
}

func TestRecipeServiceUploadImageNotOwned(t *testing.T) {
	f := newRecipeFixture(t, false)
	f.repo.EXPECT().FindByID(gomock.Any(), int64(2), int64(4)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.UploadImage(context.Background(), 2, 4, []byte("image bytes"))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRecipeServiceUploadImageRemovesFileWhenRecipeVanishes(t *testing.T) {
	f := newRecipeFixture(t, false)

	f.repo.EXPECT().FindByID(gomock.Any(), int64(1), int64(4)).Return(sampleRecipe(), nil)
	f.images.EXPECT().SaveRecipeImage(gomock.Any()).Return("uploads/recipe/new.jpg", nil)
	f.repo.EXPECT().UpdateImage(gomock.Any(), int64(1), int64(4), "uploads/recipe/new.jpg").
		Return(nil, repository.ErrNotFound)
	f.images.EXPECT().Remove("uploads/recipe/new.jpg").Return(nil)

	_, err := f.svc.UploadImage(context.Background(), 1, 4, []byte("image bytes"))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// memCache is an in-process cache.Cache for tests that need real storage semantics
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (m *memCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, string(data), expiration)
}

func (m *memCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (m *memCache) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *memCache) Close() error { return nil }
