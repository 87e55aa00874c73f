package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bakedbyann/bakery-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limiter services.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(RateLimiter(limiter))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRateLimiterAllowsThenBlocks(t *testing.T) {
	limiter := services.NewMemoryLimiter(3, time.Minute)
	router := newLimitedRouter(limiter)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please try again later."}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiterSeparateIdentifiers(t *testing.T) {
	limiter := services.NewMemoryLimiter(1, time.Minute)
	router := newLimitedRouter(limiter)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	router.ServeHTTP(second, req)
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestClientIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "forwarded-for wins",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1", "X-Real-IP": "198.51.100.4"},
			expected: "203.0.113.7",
		},
		{
			name:     "real-ip fallback",
			headers:  map[string]string{"X-Real-IP": "198.51.100.4"},
			expected: "198.51.100.4",
		},
		{
			name:     "unknown fallback",
			headers:  map[string]string{},
			expected: UnknownIdentifier,
		},
		{
			name:     "whitespace-only forwarded-for falls through",
			headers:  map[string]string{"X-Forwarded-For": " ", "X-Real-IP": "198.51.100.4"},
			expected: "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIdentifier(c))
		})
	}
}

// Requests with no resolvable origin share one bucket.
func TestRateLimiterUnknownSharedBucket(t *testing.T) {
	limiter := services.NewMemoryLimiter(1, time.Minute)
	router := newLimitedRouter(limiter)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
