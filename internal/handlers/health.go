package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/supervisor"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	sup *supervisor.Supervisor
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sup *supervisor.Supervisor) *HealthHandler {
	return &HealthHandler{
		sup: sup,
	}
}

// Check handles the health check endpoint
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "kmsdash",
		"kms": gin.H{
			"state":  h.sup.State().String(),
			"pid":    h.sup.PID(),
			"run_id": h.sup.RunID(),
		},
	})
}
