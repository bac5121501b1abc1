package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cors lets the browser app call the relay from its own origin.
func Cors() gin.HandlerFunc {
	return func(context *gin.Context) {
		context.Header("Access-Control-Allow-Origin", "*") // You can replace * with the specified domain name
		context.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-Id, Authorization")
		context.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		context.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-Id")
		if context.Request.Method == http.MethodOptions {
			context.AbortWithStatus(http.StatusNoContent)
			return
		}
		context.Next()
	}
}
