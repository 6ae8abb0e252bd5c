package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/sink"
	"github.com/imyashkale/kmsdash/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newTestSink(t *testing.T) *sink.Sink {
	t.Helper()
	return sink.New(filepath.Join(t.TempDir(), "kms_logs.txt"))
}

func newTestStore(t *testing.T, ip, port string) (*state.Store, *sink.Sink) {
	t.Helper()
	audit := newTestSink(t)
	return state.New(ip, port, audit), audit
}

func newTestCollector() *metrics.Collector {
	return metrics.NewCollector()
}
