package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/models"
	"github.com/imyashkale/kmsdash/internal/services"
	"github.com/imyashkale/kmsdash/internal/state"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	store   *state.Store
	catalog *services.CatalogService
	metrics *metrics.Collector
}

// NewProductHandler creates a new product handler
func NewProductHandler(store *state.Store, catalog *services.CatalogService, m *metrics.Collector) *ProductHandler {
	return &ProductHandler{
		store:   store,
		catalog: catalog,
		metrics: m,
	}
}

// List returns the product catalog with activation commands rendered against
// the current server configuration
func (h *ProductHandler) List(c *gin.Context) {
	products := h.catalog.Build(h.store.Get())
	h.metrics.CatalogBuilt(len(products))

	c.JSON(http.StatusOK, models.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}
