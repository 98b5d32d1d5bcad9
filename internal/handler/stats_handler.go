package handler

import (
	"net/http"

	"github.com/campusdesk/studentdir/internal/response"
	"github.com/campusdesk/studentdir/internal/worker"
	"github.com/gin-gonic/gin"
)

// StatsHandler exposes the mutation counters gathered by the audit worker.
type StatsHandler struct {
	audit *worker.AuditWorker
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(audit *worker.AuditWorker) *StatsHandler {
	return &StatsHandler{audit: audit}
}

// GetStats godoc
// GET /api/v1/admin/stats
// Returns create/update/delete counters since process start.
func (h *StatsHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"stats": h.audit.Snapshot()})
}
