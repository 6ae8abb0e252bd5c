package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/services"
	"github.com/imyashkale/kmsdash/internal/sink"
	"github.com/imyashkale/kmsdash/internal/state"
)

// pageLogLines is how many log lines the dashboard renders on first load.
const pageLogLines = 50

// DashboardHandler handles the HTML dashboard page
type DashboardHandler struct {
	store   *state.Store
	catalog *services.CatalogService
	logs    *sink.Sink
	metrics *metrics.Collector
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *state.Store, catalog *services.CatalogService, logs *sink.Sink, m *metrics.Collector) *DashboardHandler {
	return &DashboardHandler{
		store:   store,
		catalog: catalog,
		logs:    logs,
		metrics: m,
	}
}

// Home renders the dashboard with the current config, the product catalog
// and the most recent log lines
func (h *DashboardHandler) Home(c *gin.Context) {
	cfg := h.store.Get()

	// Commands embed the current server address, so the catalog is rebuilt
	// against this request's snapshot rather than served from a cache.
	products := h.catalog.Build(cfg)
	h.metrics.CatalogBuilt(len(products))

	lines, err := h.logs.Tail(pageLogLines)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to read logs for dashboard")
		lines = nil
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Config":   cfg,
		"Products": products,
		"Logs":     lines,
	})
}
