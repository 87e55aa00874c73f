package router

import (
	"github.com/bakedbyann/bakery-backend/config"
	"github.com/bakedbyann/bakery-backend/handlers"
	"github.com/bakedbyann/bakery-backend/middleware"
	"github.com/bakedbyann/bakery-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	EnquiryHandler  *handlers.EnquiryHandler
	BookingHandler  *handlers.BookingHandler
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	Limiter         services.Limiter
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus metrics endpoint

	// Form submission routes share one rate limit bucket per client.
	api := r.Group("/api")
	api.Use(middleware.RateLimiter(deps.Limiter))
	{
		api.POST("/contact", deps.EnquiryHandler.SubmitEnquiry)
		api.POST("/workshops", deps.BookingHandler.SubmitBooking)
		api.POST("/feedback", deps.FeedbackHandler.SubmitFeedback)
	}

	return r
}
