package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks liveness of a downstream dependency
type Pinger interface {
	Ping() error
}

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers the health endpoint on the engine root,
// outside the versioned API prefix
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":  status,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
