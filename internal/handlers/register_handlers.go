package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/zimmr_backend/cmd/docs"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
	"github.com/SscSPs/zimmr_backend/internal/platform/config"
	"github.com/SscSPs/zimmr_backend/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db HealthChecker,
) error {
	dto.RegisterValidators()

	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	loginLimiter, err := middleware.NewRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}
	publicLimiter, err := middleware.NewRateLimiter(cfg.PublicRateLimit)
	if err != nil {
		return err
	}

	api := r.Group("/api/v1")
	registerAuthRoutes(api, cfg, services.Auth, loginLimiter)
	registerPublicSpaceRoutes(api, services.CustomerSpace, publicLimiter)

	setupAPIV1Routes(api, cfg, services)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated part of /api/v1
func setupAPIV1Routes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	registerMeRoutes(v1, services.Auth)
	registerCraftsmanRoutes(v1, services.Craftsman)
	registerCustomerRoutes(v1, services.Customer, services.CustomerSpace)
	registerMaterialRoutes(v1, services.Material)
	registerAppointmentRoutes(v1, services.Appointment, services.Invoice)
	registerInvoiceRoutes(v1, services.Invoice)
	registerTimeEntryRoutes(v1, services.TimeEntry)
	registerReportingRoutes(v1, services.Reporting)
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

// healthHandler godoc
// @Summary Health check
// @Description Reports whether the service and its database are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthHandler(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
