package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/state"
	"github.com/imyashkale/kmsdash/internal/supervisor"
)

// ServerHandler handles KMS server lifecycle requests
type ServerHandler struct {
	sup   *supervisor.Supervisor
	store *state.Store
}

// NewServerHandler creates a new server handler
func NewServerHandler(sup *supervisor.Supervisor, store *state.Store) *ServerHandler {
	return &ServerHandler{
		sup:   sup,
		store: store,
	}
}

// Restart stops the KMS server if it is running and starts a fresh one,
// returning the refreshed configuration snapshot
func (h *ServerHandler) Restart(c *gin.Context) {
	if err := h.sup.Restart(); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to restart KMS server")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to restart KMS server",
		})
		return
	}

	c.JSON(http.StatusOK, h.store.Get())
}
