package handlers

import (
	"html/template"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imyashkale/kmsdash/internal/services"
	"github.com/imyashkale/kmsdash/internal/web"
)

func TestDashboardRendersConfigProductsAndLogs(t *testing.T) {
	store, _ := newTestStore(t, "192.168.1.9", "1688")
	logs := newTestSink(t)
	require.NoError(t, logs.Append("KMS server listening on 0.0.0.0:1688"))

	db := &stubProductDatabase{
		tree: map[string]interface{}{
			"KmsItems": []interface{}{
				map[string]interface{}{
					"DisplayName": "Windows 10 Pro",
					"Gvlk":        "W269N-WFGWX-YVC9B-4J6C9-T83GX",
				},
			},
		},
	}
	h := NewDashboardHandler(store, services.NewCatalogService(db), logs, newTestCollector())

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))
	r.GET("/", h.Home)

	w := performRequest(r, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "KMS Server Dashboard")
	assert.Contains(t, body, "192.168.1.9")
	assert.Contains(t, body, "KMS Products (1 available)")
	assert.Contains(t, body, "Windows 10 Pro")
	assert.Contains(t, body, "W269N-WFGWX-YVC9B-4J6C9-T83GX")
	assert.Contains(t, body, "slmgr /skms 192.168.1.9:1688")
	assert.Contains(t, body, "KMS server listening on 0.0.0.0:1688")
}

func TestDashboardRendersWithoutLogsOrProducts(t *testing.T) {
	store, _ := newTestStore(t, "0.0.0.0", "1688")
	h := NewDashboardHandler(store, services.NewCatalogService(&stubProductDatabase{}), newTestSink(t), newTestCollector())

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))
	r.GET("/", h.Home)

	w := performRequest(r, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "KMS Products (0 available)")
}
