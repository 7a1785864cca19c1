package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK sends status with {"ok": true} merged into fields
func OK(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)

	message := appErr.Message
	if message == "" && appErr.Err != nil {
		message = appErr.Err.Error()
	}

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed", zap.String("code", appErr.Code), zap.Error(err))
	}

	c.JSON(appErr.Status, gin.H{
		"ok":    false,
		"code":  appErr.Code,
		"error": message,
	})
}

// ErrorWithStatus sends an error response with a specific status and message
func ErrorWithStatus(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"ok":    false,
		"code":  code,
		"error": message,
	})
}
