package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imyashkale/kmsdash/internal/models"
	"github.com/imyashkale/kmsdash/internal/services"
)

type stubProductDatabase struct {
	tree interface{}
	err  error
}

func (s *stubProductDatabase) Load() (interface{}, error) {
	return s.tree, s.err
}

func newProductRouter(t *testing.T, db *stubProductDatabase) *gin.Engine {
	t.Helper()
	store, _ := newTestStore(t, "192.168.1.9", "1688")
	h := NewProductHandler(store, services.NewCatalogService(db), newTestCollector())

	r := gin.New()
	r.GET("/api/products", h.List)
	return r
}

func TestProductsList(t *testing.T) {
	db := &stubProductDatabase{
		tree: map[string]interface{}{
			"KmsItems": []interface{}{
				map[string]interface{}{
					"DisplayName": "Windows 10 Pro",
					"Gvlk":        "W269N-WFGWX-YVC9B-4J6C9-T83GX",
				},
				map[string]interface{}{
					"DisplayName": "Office 2019 Pro Plus",
					"Gvlk":        "NMMKJ-6RK4F-KMJVX-8D9MJ-6MWKP",
				},
			},
		},
	}
	r := newProductRouter(t, db)

	w := performRequest(r, "GET", "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, 2, got.Total)
	require.Len(t, got.Products, 2)

	first := got.Products[0]
	assert.Equal(t, "Windows 10 Pro", first.DisplayName)
	assert.Equal(t, "W269N-WFGWX-YVC9B-4J6C9-T83GX", first.GVLK)
	assert.Equal(t, "slmgr /ipk W269N-WFGWX-YVC9B-4J6C9-T83GX", first.Commands.InstallKey)
	assert.Equal(t, "slmgr /skms 192.168.1.9:1688", first.Commands.SetServer)
	assert.Equal(t, "slmgr /ato", first.Commands.Activate)
	assert.Equal(t, "slmgr /xpr", first.Commands.CheckStatus)
}

func TestProductsListEmptyWhenLoadFails(t *testing.T) {
	db := &stubProductDatabase{err: errors.New("database unavailable")}
	r := newProductRouter(t, db)

	w := performRequest(r, "GET", "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0, got.Total)
	assert.Empty(t, got.Products)
}
