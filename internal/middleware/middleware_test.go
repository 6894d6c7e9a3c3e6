package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/testhelpers"
	"github.com/chef-fest/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("signature is invalid"))

	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := middleware.CurrentUserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	validator := new(testhelpers.MockTokenValidator)
	validator.On("ValidateToken", "admin").Return(&types.TokenClaims{UserID: uuid.New(), IsAdmin: true}, nil)
	validator.On("ValidateToken", "user").Return(&types.TokenClaims{UserID: uuid.New()}, nil)

	r := gin.New()
	r.DELETE("/thing", middleware.AuthMiddleware(validator), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for token, status := range map[string]int{"admin": http.StatusNoContent, "user": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodDelete, "/thing", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		assert.Equal(t, status, serve(r, req).Code, token)
	}
}

func TestIsSelfOrAdmin(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	check := func(claims *types.TokenClaims, target uuid.UUID) bool {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if claims != nil {
			c.Set("claims", claims)
		}
		return middleware.IsSelfOrAdmin(c, target)
	}

	assert.True(t, check(&types.TokenClaims{UserID: self}, self))
	assert.False(t, check(&types.TokenClaims{UserID: self}, other))
	assert.True(t, check(&types.TokenClaims{UserID: self, IsAdmin: true}, other))
	assert.False(t, check(nil, self))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	w = serve(r, req)
	assert.Equal(t, "client-supplied", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:5173"}))
	r.GET("/api/recipes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	req.Header.Set("Origin", "http://evil.example")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
}

func TestRateLimiterWithoutRedisAllows(t *testing.T) {
	r := gin.New()
	r.POST("/contact", middleware.NewContactRateLimiter(nil).RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil)).Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	r := gin.New()
	r.POST("/contact", middleware.NewContactRateLimiter(client).RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
