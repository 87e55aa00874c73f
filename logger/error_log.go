package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLog contains structured information about an error occurrence.
type ErrorLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Path       string    `json:"path,omitempty"`
	Method     string    `json:"method,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
}

// LogHTTPError logs an error that occurred while serving an HTTP request,
// attaching request metadata from the gin context. The raw error detail is
// logged server-side only; callers are responsible for deciding what, if
// anything, is exposed to the client.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	entry := ErrorLog{
		Timestamp:  time.Now().UTC(),
		Level:      "error",
		Message:    message,
		StatusCode: statusCode,
		RequestID:  c.GetString("request_id"),
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		IPAddress:  c.ClientIP(),
	}

	fields := []interface{}{
		zap.Int("status_code", entry.StatusCode),
		zap.String("request_id", entry.RequestID),
		zap.String("path", entry.Path),
		zap.String("method", entry.Method),
		zap.String("ip_address", entry.IPAddress),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	if statusCode >= 500 {
		log.Errorw(message, fields...)
	} else {
		log.Warnw(message, fields...)
	}
}
