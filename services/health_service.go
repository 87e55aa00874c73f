package services

import (
	"context"
	"time"

	"github.com/bakedbyann/bakery-backend/logger"
	"github.com/bakedbyann/bakery-backend/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthService reports the status of the service and its optional
// dependencies. Redis is only checked when a distributed rate limiter
// is configured; email delivery is stateless so only configuration is
// verified.
type HealthService struct {
	redisClient     *redis.Client
	emailConfigured bool
	version         string
	startTime       time.Time
	log             *zap.SugaredLogger
}

func NewHealthService(redisClient *redis.Client, emailConfigured bool, version string) *HealthService {
	return &HealthService{
		redisClient:     redisClient,
		emailConfigured: emailConfigured,
		version:         version,
		startTime:       time.Now(),
		log:             logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	emailStatus := h.checkEmail()
	components["email"] = emailStatus
	if emailStatus.Status == types.HealthStatusDegraded {
		overallStatus = types.HealthStatusDegraded
	}

	if h.redisClient != nil {
		redisStatus := h.checkRedis(ctx)
		components["redis"] = redisStatus
		if redisStatus.Status == types.HealthStatusDown {
			// Rate limiting fails open, so a Redis outage degrades the
			// service rather than taking it down.
			overallStatus = types.HealthStatusDegraded
		}
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkEmail() types.HealthComponent {
	if !h.emailConfigured {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Email API key not configured",
		}
	}
	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}
	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}
