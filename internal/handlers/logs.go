package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/sink"
)

// apiLogLines is how many log lines the logs API returns at most.
const apiLogLines = 100

// LogHandler handles live log requests
type LogHandler struct {
	logs    *sink.Sink
	metrics *metrics.Collector
}

// NewLogHandler creates a new log handler
func NewLogHandler(logs *sink.Sink, m *metrics.Collector) *LogHandler {
	return &LogHandler{
		logs:    logs,
		metrics: m,
	}
}

// List returns the most recent log lines, oldest first, as a plain JSON
// array. A missing or unreadable log file degrades to an empty list.
func (h *LogHandler) List(c *gin.Context) {
	lines, err := h.logs.Tail(apiLogLines)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to read logs")
		lines = nil
	}

	if lines == nil {
		lines = make([]string, 0)
	}

	h.metrics.LogsRead()

	c.JSON(http.StatusOK, lines)
}
