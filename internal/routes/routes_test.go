package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"recipe-be/internal/config"
	"recipe-be/internal/entities"
	"recipe-be/internal/models"
	"recipe-be/internal/routes"
	"recipe-be/internal/service"
	"recipe-be/internal/service/mocks"
)

type testServices struct {
	auth        *mocks.MockAuthService
	tags        *mocks.MockAttributeService
	ingredients *mocks.MockAttributeService
	recipes     *mocks.MockRecipeService
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:            "http://localhost:8080",
		MediaURL:           "/media",
		MaxUploadBytes:     1 << 20,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		RateLimitAuthRPS:   1000,
		RateLimitAuthBurst: 1000,
	}
}

func newTestRouter(t *testing.T, mediaFs afero.Fs) (*gin.Engine, *testServices) {
	t.Helper()
	return newTestRouterWithConfig(t, testConfig(), mediaFs)
}

func newTestRouterWithConfig(t *testing.T, cfg *config.Config, mediaFs afero.Fs) (*gin.Engine, *testServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	ts := &testServices{
		auth:        mocks.NewMockAuthService(ctrl),
		tags:        mocks.NewMockAttributeService(ctrl),
		ingredients: mocks.NewMockAttributeService(ctrl),
		recipes:     mocks.NewMockRecipeService(ctrl),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router, err := routes.NewRouter(ctx, cfg, routes.Services{
		Auth:        ts.auth,
		Tags:        ts.tags,
		Ingredients: ts.ingredients,
		Recipes:     ts.recipes,
	}, mediaFs, zap.NewNop())
	require.NoError(t, err)

	return router, ts
}

func request(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, afero.NewMemMapFs())

	w := request(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, afero.NewMemMapFs())
	request(r, http.MethodGet, "/health", "")

	w := request(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipe_api_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t, afero.NewMemMapFs())

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPatch, "/api/users/me"},
		{http.MethodGet, "/api/recipe/tags"},
		{http.MethodPost, "/api/recipe/ingredients"},
		{http.MethodGet, "/api/recipe/recipes"},
		{http.MethodGet, "/api/recipe/recipes/1"},
		{http.MethodDelete, "/api/recipe/recipes/1"},
		{http.MethodPost, "/api/recipe/recipes/1/upload-image"},
		{http.MethodGet, "/api/recipe/recipes/1/qrcode"},
	}

	for _, p := range paths {
		w := request(r, p.method, p.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestAuthenticatedRequestReachesController(t *testing.T) {
	r, ts := newTestRouter(t, afero.NewMemMapFs())
	ts.auth.EXPECT().ResolveToken(gomock.Any(), "token-1").Return(&entities.User{ID: 1, IsActive: true}, nil)
	ts.ingredients.EXPECT().List(gomock.Any(), int64(1)).Return([]models.AttributeResponse{{ID: 1, Name: "Kale"}}, nil)

	w := request(r, http.MethodGet, "/api/recipe/ingredients", "token-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Kale"}]`, w.Body.String())
}

func TestInvalidTokenIsUnauthorized(t *testing.T) {
	r, ts := newTestRouter(t, afero.NewMemMapFs())
	ts.auth.EXPECT().ResolveToken(gomock.Any(), "stale").Return(nil, service.ErrUnauthorized)

	w := request(r, http.MethodGet, "/api/recipe/tags", "stale")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnsupportedMethod(t *testing.T) {
	r, _ := newTestRouter(t, afero.NewMemMapFs())

	for _, p := range []struct{ method, path string }{
		{http.MethodPut, "/api/users/token"},
		{http.MethodGet, "/api/users/create"},
	} {
		w := request(r, p.method, p.path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", p.method, p.path)
	}
}

func TestUnsupportedMethodOnProtectedPathAuthenticatesFirst(t *testing.T) {
	r, ts := newTestRouter(t, afero.NewMemMapFs())

	for _, p := range []struct{ method, path string }{
		{http.MethodDelete, "/api/recipe/tags"},
		{http.MethodPut, "/api/recipe/recipes"},
		{http.MethodPost, "/api/users/me"},
	} {
		w := request(r, p.method, p.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}

	ts.auth.EXPECT().ResolveToken(gomock.Any(), "token-1").Return(&entities.User{ID: 1, IsActive: true}, nil)
	w := request(r, http.MethodDelete, "/api/recipe/tags", "token-1")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	r, _ := newTestRouterWithConfig(t, cfg, afero.NewMemMapFs())

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/users/token", nil)
		req.RemoteAddr = "192.0.2.10:4321"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// An empty body fails binding, so no service call is made
	assert.Equal(t, http.StatusBadRequest, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
}

func TestInvalidTrustedProxies(t *testing.T) {
	cfg := testConfig()
	cfg.TrustedProxies = []string{"not-an-ip"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := routes.NewRouter(ctx, cfg, routes.Services{}, afero.NewMemMapFs(), zap.NewNop())
	assert.ErrorContains(t, err, "trusted proxies")
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t, afero.NewMemMapFs())

	w := request(r, http.MethodGet, "/api/nothing-here", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMediaServesUploadedFiles(t *testing.T) {
	mediaFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mediaFs, "uploads/recipe/abc.txt", []byte("hello"), 0o644))
	r, _ := newTestRouter(t, mediaFs)

	w := request(r, http.MethodGet, "/media/uploads/recipe/abc.txt", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", strings.TrimSpace(w.Body.String()))

	w = request(r, http.MethodGet, "/media/uploads/recipe/missing.jpg", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
