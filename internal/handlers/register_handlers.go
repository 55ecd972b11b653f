package handlers

import (
	"github.com/SscSPs/property_ledger/cmd/docs"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	// Auth runs first so the limiter can key on the user
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), middleware.RateLimit(limiter))

	RegisterChargeRoutes(v1, service.Charge, service.LateFee)
	RegisterPaymentRoutes(v1, service.Payment)
	RegisterLateFeeSettingsRoutes(v1, service.LateFee)
	RegisterMortgageRoutes(v1, service.Mortgage)
	RegisterSummaryRoutes(v1, service.Summary)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
