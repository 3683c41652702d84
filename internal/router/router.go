package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"partsync/internal/domain"
	"partsync/internal/handler"
	"partsync/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Reconcile *handler.ReconcileHandler
	Review    *handler.ReviewHandler
	Export    *handler.ExportHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier *middleware.TokenVerifier,
	allowedOrigins []string,
	logger *zap.Logger,
	h Handlers,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(verifier))

	v1.POST("/reconcile", middleware.RequireRole(domain.RoleEngineer, domain.RoleService), h.Reconcile.Reconcile)
	v1.POST("/reconcile/preview", h.Reconcile.Preview)
	v1.GET("/stats", h.Reconcile.GetStats)

	runs := v1.Group("/runs")
	runs.GET("", h.Reconcile.ListRuns)
	runs.GET("/:id", h.Reconcile.GetRun)
	runs.GET("/:id/decisions", h.Review.ListDecisions)
	runs.POST("/:id/decisions", middleware.RequireRole(domain.RoleEngineer, domain.RoleOperator), h.Review.Decide)
	runs.GET("/:id/approved", h.Review.Approved)
	runs.GET("/:id/export", h.Export.Download)
	runs.POST("/:id/export", h.Export.Export)

	return r
}
