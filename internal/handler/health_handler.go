package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/database"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

// HealthHandler handles liveness and readiness checks
type HealthHandler struct {
	db *database.PostgresDB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports service health including database connectivity.
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		response.Error(c, 503, "UNHEALTHY", "Database unreachable")
		return
	}

	response.OK(c, gin.H{"status": "ok"})
}
