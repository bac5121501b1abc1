package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"prism/log"
)

const (
	RequestIdHeader = "X-Request-Id"
	requestIdKey    = "request_id"
)

// RequestId tags every request with an id, taken from the caller when it sent a valid uuid, and
// writes one access log line when the request is done.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIdKey, id)
		c.Header(RequestIdHeader, id)

		start := time.Now()
		c.Next()
		log.With("request_id", id).Infof("%s %s %d %s", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// GetRequestId returns the id set by RequestId, empty outside of it.
func GetRequestId(c *gin.Context) string {
	return c.GetString(requestIdKey)
}
