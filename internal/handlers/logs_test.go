package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imyashkale/kmsdash/internal/sink"
)

func newLogRouter(t *testing.T) (*gin.Engine, *sink.Sink) {
	t.Helper()
	logs := newTestSink(t)
	h := NewLogHandler(logs, newTestCollector())

	r := gin.New()
	r.GET("/api/logs", h.List)
	return r, logs
}

func TestLogsEmptyWhenFileMissing(t *testing.T) {
	r, _ := newLogRouter(t)

	w := performRequest(r, "GET", "/api/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The body is a bare array, not an object, and never null.
	assert.Equal(t, "[]", w.Body.String())
}

func TestLogsReturnsRecentLinesOldestFirst(t *testing.T) {
	r, logs := newLogRouter(t)

	for i := 1; i <= 150; i++ {
		require.NoError(t, logs.Append(fmt.Sprintf("line %d", i)))
	}

	w := performRequest(r, "GET", "/api/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 100)
	assert.Equal(t, "line 51", got[0])
	assert.Equal(t, "line 150", got[99])
}

func TestLogsShortFileReturnsEverything(t *testing.T) {
	r, logs := newLogRouter(t)

	require.NoError(t, logs.Append("only line"))

	w := performRequest(r, "GET", "/api/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"only line"}, got)
}
