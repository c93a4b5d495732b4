package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/internal/models"
	"github.com/pkowalski/codeplay/backend/internal/services"
	"github.com/pkowalski/codeplay/backend/internal/storage"
)

// HealthHandler reports the status of the storage subsystem.
type HealthHandler struct {
	store    storage.Store
	projects *services.ProjectStore
}

func NewHealthHandler(store storage.Store, projects *services.ProjectStore) *HealthHandler {
	return &HealthHandler{store: store, projects: projects}
}

// CheckHealth returns the health of the database connection and the
// storage namespace, plus the stored project count.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	storageStatus := "ok"
	if err := storage.Probe(h.store); err != nil {
		storageStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	projectCount, err := h.projects.Count()
	if err != nil {
		projectCount = -1
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "codeplay",
		"components": gin.H{
			"database": dbStatus,
			"storage":  storageStatus,
			"projects": projectCount,
		},
	})
}
