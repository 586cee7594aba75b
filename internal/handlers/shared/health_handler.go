package handlers

import (
	"context"
	"net/http"
	"time"

	"venuehub/internal/services"
	"venuehub/pkg/database"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db    *database.MongoDB
	cache services.CacheService
}

func NewHealthHandler(db *database.MongoDB, cache services.CacheService) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Health reports dependency status. The service stays "degraded" rather
// than down when the primary store is unreachable, since reads fall back.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{
		"mongodb": "ok",
		"redis":   "ok",
	}
	status := "ok"

	if err := h.db.Ping(ctx); err != nil {
		checks["mongodb"] = err.Error()
		status = "degraded"
	}
	if err := h.cache.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		status = "degraded"
	}

	code := http.StatusOK
	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
		"time":   time.Now().UTC(),
	})
}
