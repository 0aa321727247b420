package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Root answers the liveness banner.
func (h *Controller) Root(c *gin.Context) {
	c.String(http.StatusOK, "Server is running!")
}

// Health returns 200 if the process is alive. Used by load balancers.
func (h *Controller) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if every dependency answers a ping. Used by K8s readiness probes.
func (h *Controller) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": name + " unavailable"})
			return
		}
	}
	c.String(http.StatusOK, "OK")
}
