package utils

import "github.com/gin-gonic/gin"

// RequestIDKey is the gin context key holding the current request id.
const RequestIDKey = "request_id"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"success":    false,
		"message":    message,
		"request_id": c.GetString(RequestIDKey),
	})
}
