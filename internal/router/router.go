package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/api"
	"github.com/chef-fest/backend/internal/metrics"
	"github.com/chef-fest/backend/internal/middleware"
	"github.com/chef-fest/backend/internal/service"
)

// Services are the collaborators behind the API. Images may be nil when
// object storage is not configured.
type Services struct {
	Tokens  middleware.TokenValidator
	Recipes service.IRecipeService
	Reviews service.IReviewService
	Saved   service.ISavedRecipeService
	Users   service.IUserService
	Images  service.IImageService
	Email   service.IEmailService
}

// SetupRouter configures the application routes. A nil redisClient
// disables rate limiting.
func SetupRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, svc Services) *gin.Engine {
	if cfg.Environment.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSOrigins),
	)

	health := api.NewHealthHandler(db, redisClient)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", metrics.Handler())

	var reviewLimiter, contactLimiter *middleware.RateLimiter
	if redisClient != nil {
		reviewLimiter = middleware.NewReviewRateLimiter(redisClient)
		contactLimiter = middleware.NewContactRateLimiter(redisClient)
	}

	apiGroup := router.Group("/api")
	api.NewRecipeHandler(svc.Recipes, svc.Images, svc.Tokens).RegisterRoutes(apiGroup)
	api.NewReviewHandler(svc.Reviews, svc.Tokens, reviewLimiter).RegisterRoutes(apiGroup)
	api.NewSavedRecipeHandler(svc.Saved, svc.Tokens).RegisterRoutes(apiGroup)
	api.NewUserHandler(svc.Users, svc.Images, svc.Tokens).RegisterRoutes(apiGroup)
	api.NewContactHandler(svc.Email, contactLimiter).RegisterRoutes(apiGroup)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
