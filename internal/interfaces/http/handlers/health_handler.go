package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motes-generator.backend/pkg/redis"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports database reachability and whether redis is configured.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "unconfigured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "error"
		}
	}

	redisStatus := "unavailable"
	if redis.Available() {
		redisStatus = "ok"
	}

	status, overall := http.StatusOK, "ok"
	if dbStatus == "error" {
		status, overall = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(status, gin.H{
		"ok":       status == http.StatusOK,
		"status":   overall,
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
