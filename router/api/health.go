package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Health liveness and metrics endpoints
func Health(e *gin.Engine, signer string) {
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "signer": signer})
	})
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
