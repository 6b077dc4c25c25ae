package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wisker-app/wisker/internal/pkg/errors"
)

func JSON(c *gin.Context, status int, v any) {
	c.Header("Content-Type", "application/json")
	c.JSON(status, v)
}

func Error(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// ErrorFrom maps an AppError returned by a repository onto its HTTP status
func ErrorFrom(c *gin.Context, err error) {
	if appErr, ok := errors.GetAppError(err); ok {
		Error(c, appErr.StatusCode, appErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, "internal error")
}
