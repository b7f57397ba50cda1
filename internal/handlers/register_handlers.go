package handlers

import (
	"github.com/fledgehq/fledge-backend/cmd/docs"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/middleware"
	"github.com/fledgehq/fledge-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	public := r.Group("/api/v1")
	if rateLimiter != nil {
		public.Use(middleware.RateLimit(rateLimiter))
	}

	// Authenticated group: every route requires a valid bearer token.
	authed := public.Group("", middleware.TokenAuthMiddleware(services.Auth))

	registerAuthRoutes(public, authed, services.Auth)
	registerFSAAccountRoutes(authed, services.Account, services.Allocation)
	registerEmployeeRoutes(authed, services.Employee, services.Reporting)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
