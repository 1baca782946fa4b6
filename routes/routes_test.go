package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecommerce-backend/controllers"
	_ "ecommerce-backend/docs"
	"ecommerce-backend/models"
	"ecommerce-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productEngine(t *testing.T) (*gin.Engine, *utils.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	r := gin.New()
	SetupCommonRoutes(r, "product-service")
	SetupProductRoutes(r, controllers.NewProductController(nil), controllers.NewCategoryController(nil), tokens)
	return r, tokens
}

func tokenFor(t *testing.T, tokens *utils.TokenManager, role models.Role) string {
	t.Helper()
	token, err := tokens.GenerateToken(&models.User{ID: 1, Email: "admin@shop.test", Role: role})
	require.NoError(t, err)
	return token
}

func TestSetupProductRoutes_AdminGate(t *testing.T) {
	r, tokens := productEngine(t)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"user role", tokenFor(t, tokens, models.RoleUser), http.StatusForbidden},
		// Reaches the handler, which rejects the empty body before touching the service.
		{"admin role", tokenFor(t, tokens, models.RoleAdmin), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSetupCommonRoutes(t *testing.T) {
	r, _ := productEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP","service":"product-service"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupOrderRoutes_PublicCartAndOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupOrderRoutes(r, controllers.NewCartController(nil), controllers.NewOrderController(nil))

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"POST /api/cart/:userId/items",
		"GET /api/cart/:userId",
		"PUT /api/cart/:userId/items/:itemId",
		"DELETE /api/cart/:userId/items/:itemId",
		"DELETE /api/cart/:userId",
		"POST /api/orders",
		"GET /api/orders/:orderId",
		"GET /api/orders/user/:userId",
		"GET /api/orders",
		"PATCH /api/orders/:orderId/status",
		"DELETE /api/orders/:orderId",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetupCommonRoutes_SwaggerPerService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		service string
		has     string
		lacks   []string
	}{
		{"auth-service", "/auth/login", []string{"/products", "/orders"}},
		{"product-service", "/products/{id}", []string{"/auth/login", "/cart/{userId}"}},
		{"order-service", "/orders/{orderId}", []string{"/auth/login", "/categories"}},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			r := gin.New()
			SetupCommonRoutes(r, tt.service)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var doc struct {
				Paths map[string]json.RawMessage `json:"paths"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
			assert.Contains(t, doc.Paths, tt.has)
			for _, path := range tt.lacks {
				assert.NotContains(t, doc.Paths, path)
			}
		})
	}
}
