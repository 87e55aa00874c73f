package middleware

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/bakedbyann/bakery-backend/errors"
	"github.com/bakedbyann/bakery-backend/services"
	"github.com/gin-gonic/gin"
)

// UnknownIdentifier buckets all traffic whose origin cannot be resolved
// from proxy headers.
const UnknownIdentifier = "unknown"

const rateLimitMessage = "Too many requests. Please try again later."

// RateLimiter gates requests through the given limiter before any other
// work happens. Rejected requests get a 429 with a Retry-After header.
func RateLimiter(limiter services.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := ClientIdentifier(c)

		allowed, retryAfter := limiter.Allow(c.Request.Context(), identifier)
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", seconds))
			}
			_ = c.Error(apperrors.RateLimitExceeded(rateLimitMessage, seconds))
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClientIdentifier extracts the rate-limit identifier for the request.
// It checks X-Forwarded-For first (taking the first IP in the chain), then
// X-Real-IP, then falls back to the shared "unknown" bucket.
func ClientIdentifier(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return UnknownIdentifier
}
