package main

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/bakedbyann/bakery-backend/config"
	"github.com/bakedbyann/bakery-backend/handlers"
	"github.com/bakedbyann/bakery-backend/logger"
	"github.com/bakedbyann/bakery-backend/router"
	"github.com/bakedbyann/bakery-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Rate limiting uses Redis when configured so limits hold across
	// replicas; otherwise a single-process in-memory limiter is enough.
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	var limiter services.Limiter
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.Redis.UseTLS {
			host := cfg.Redis.Address
			if i := strings.IndexByte(host, ':'); i >= 0 {
				host = host[:i]
			}
			redisOptions.TLSConfig = &tls.Config{
				ServerName: host,
				MinVersion: tls.VersionTLS12,
			}
		}
		redisClient = redis.NewClient(redisOptions)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warnw("Failed to close Redis client", "error", err)
			}
		}()
		limiter = services.NewRedisLimiter(redisClient, cfg.RateLimit.MaxRequests, window)
	} else {
		limiter = services.NewMemoryLimiter(cfg.RateLimit.MaxRequests, window)
	}

	// Services
	emailService := services.NewEmailService(&cfg.Email)
	healthService := services.NewHealthService(redisClient, cfg.Email.ResendAPIKey != "", cfg.Server.Version)

	// Handlers
	deps := router.Dependencies{
		Config:          cfg,
		EnquiryHandler:  handlers.NewEnquiryHandler(&cfg.Email, emailService),
		BookingHandler:  handlers.NewBookingHandler(&cfg.Email, emailService),
		FeedbackHandler: handlers.NewFeedbackHandler(&cfg.Email, emailService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		Limiter:         limiter,
		Logger:          log,
	}

	r := router.SetupRouter(deps)

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
