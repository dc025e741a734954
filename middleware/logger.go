package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/utils"
)

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		method := c.Request.Method
		clientIP := c.ClientIP()
		log.Printf("[http] %s %s %s %d %s rid=%s", method, path, clientIP, status, latency, c.GetString(utils.RequestIDKey))
		for _, e := range c.Errors {
			log.Printf("[http] rid=%s error: %v", c.GetString(utils.RequestIDKey), e.Err)
		}
	}
}
