package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/models"
	"github.com/imyashkale/kmsdash/internal/state"
)

// ConfigHandler handles server configuration requests
type ConfigHandler struct {
	store   *state.Store
	metrics *metrics.Collector
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(store *state.Store, m *metrics.Collector) *ConfigHandler {
	return &ConfigHandler{
		store:   store,
		metrics: m,
	}
}

// Get returns the current configuration snapshot
func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// Update replaces the advertised ip and port and returns the new snapshot.
// Omitted fields fall back to the defaults; fields sent as empty strings are
// stored as sent.
func (h *ConfigHandler) Update(c *gin.Context) {
	var req models.UpdateServerConfigRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}

	ip := models.DefaultBindIP
	if req.IP != nil {
		ip = *req.IP
	}

	port := models.DefaultPort
	if req.Port != nil {
		port = *req.Port
	}

	snapshot := h.store.Set(ip, port)
	h.metrics.ConfigUpdated()

	c.JSON(http.StatusOK, snapshot)
}
