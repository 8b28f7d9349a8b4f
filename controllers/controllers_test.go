package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/controllers"
	"github.com/joanie-store/storefront/internal/testutil"
	"github.com/joanie-store/storefront/repository"
	"github.com/joanie-store/storefront/routes"
	"github.com/joanie-store/storefront/services"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router  *gin.Engine
	catalog testutil.Catalog
	tokens  *services.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := zap.NewNop()
	tokens, err := services.NewTokenService("controller-test-secret", time.Hour)
	require.NoError(t, err)

	products := repository.NewGormProductRepository(db)
	h := routes.Handlers{
		Products: controllers.NewProductController(services.NewProductService(products, nil, log)),
		Cart:     controllers.NewCartController(services.NewCartService(repository.NewGormCartRepository(db), products, nil, log)),
		Wishlist: controllers.NewWishlistController(services.NewWishlistService(repository.NewGormWishlistRepository(db), products, nil, log)),
		Auth: controllers.NewAuthController(
			services.NewAuthService(repository.NewGormUserRepository(db), tokens, log), tokens, false),
	}
	r := gin.New()
	routes.Register(r, h, tokens, nil)

	return &testServer{router: r, catalog: testutil.SeedCatalog(t, db), tokens: tokens}
}

func (s *testServer) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.tokens.GenerateToken(userID, userID+"@example.com")
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func jsonBody(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return buf.String()
}
