package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mpass/internal/handler"
	"mpass/internal/middleware"
	"mpass/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	tokens service.AccessTokenService,
	autofillH *handler.AutofillHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Protected routes - require a valid caller token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(tokens))

	autofill := v1.Group("/autofill")
	autofill.POST("/fill", autofillH.Fill)
	autofill.POST("/save", autofillH.Save)
	autofill.POST("/authorize", autofillH.Authorize)
	autofill.POST("/classify", autofillH.Classify)

	return r
}
