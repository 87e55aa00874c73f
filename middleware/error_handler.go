package middleware

import (
	"fmt"
	"net/http"

	"github.com/bakedbyann/bakery-backend/errors"
	"github.com/bakedbyann/bakery-backend/logger"
	"github.com/bakedbyann/bakery-backend/types"
	"github.com/gin-gonic/gin"
)

const genericServerError = "An unexpected error occurred"

// ErrorHandler translates errors collected during request handling into the
// JSON wire format the site's forms consume: {"error": "..."}. Validation
// and rate-limit messages pass through verbatim; everything else is reported
// generically with the detail logged server-side only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, appError.Raw, statusCode, fmt.Sprintf("%s: %s", appError.Type, appError.Message))

			message := appError.Message
			if statusCode >= http.StatusInternalServerError {
				// Operator-facing failures: the client only learns that
				// something went wrong.
				message = genericServerError
				if appError.Type == errors.DispatchError {
					message = appError.Message
				}
			}
			c.JSON(statusCode, types.ErrorResponse{Error: message})
			return
		}

		// Gin binding errors surface as client errors.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid request payload"})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: genericServerError})
	}
}

// Recovery converts panics into the same generic 500 response instead of
// gin's empty body, keeping the wire format consistent.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.GetLogger().Errorw("Panic recovered while handling request",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method)
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: genericServerError})
	})
}
