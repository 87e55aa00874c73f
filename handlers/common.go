package handlers

import (
	apperrors "github.com/bakedbyann/bakery-backend/errors"
	"github.com/gin-gonic/gin"
)

// bindJSONOrError binds the request body and records a validation error on
// failure. Returns false if binding failed.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload"))
		return false
	}
	return true
}
